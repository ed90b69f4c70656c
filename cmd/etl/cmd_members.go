package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aohus/political-metrics/internal/assembly/identity"
	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/internal/platform/logger"
)

var membersFlags struct {
	comprehensive string
	active        string
	currentTerm   string
	membersOut    string
	erasOut       string
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Build the member identity table from the two raw member feeds",
	RunE:  runMembers,
}

func init() {
	f := membersCmd.Flags()
	f.StringVar(&membersFlags.comprehensive, "comprehensive", "", "Path to the comprehensive member feed (ALLNAMEMBER) JSON")
	f.StringVar(&membersFlags.active, "active", "", "Path to the current-members feed JSON")
	f.StringVar(&membersFlags.currentTerm, "term", "22", "Current assembly term label")
	f.StringVar(&membersFlags.membersOut, "members-out", "members.json", "Output path for member rows (file mode)")
	f.StringVar(&membersFlags.erasOut, "eras-out", "member_eras.json", "Output path for era rows (file mode)")
	_ = membersCmd.MarkFlagRequired("comprehensive")
}

func runMembers(cmd *cobra.Command, _ []string) error {
	log := logger.New("etl.members")

	comprehensive, err := decodeFile[models.RawMemberRecord](membersFlags.comprehensive)
	if err != nil {
		return err
	}
	var active []models.RawActiveMemberRecord
	if membersFlags.active != "" {
		if active, err = decodeFile[models.RawActiveMemberRecord](membersFlags.active); err != nil {
			return err
		}
	}

	index, err := identity.BuildIndex(comprehensive, active, membersFlags.currentTerm, log)
	if err != nil {
		return err
	}
	log.Info("identity table built",
		"keys", index.Len(),
		"members", len(index.Members()),
		"eras", len(index.Eras()),
	)

	if rootFlags.dsn == "" {
		if err := writeFile(membersFlags.membersOut, index.Members()); err != nil {
			return err
		}
		return writeFile(membersFlags.erasOut, index.Eras())
	}

	ctx := cmd.Context()
	pool, err := openPostgres(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	pg := store.NewPostgres(pool)
	if err := pg.SaveMembers(ctx, index.Members()); err != nil {
		return err
	}
	if err := pg.SaveEras(ctx, index.Eras()); err != nil {
		return err
	}
	fmt.Printf("loaded %d members, %d eras\n", len(index.Members()), len(index.Eras()))
	return nil
}
