package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aohus/political-metrics/internal/assembly/altbill"
	"github.com/aohus/political-metrics/internal/assembly/identity"
	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/internal/assembly/pipeline"
	"github.com/aohus/political-metrics/internal/assembly/proposer"
	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/internal/platform/logger"
)

var billsFlags struct {
	comprehensive string
	active        string
	memberBills   string
	allBills      string
	altTable      string
	currentTerm   string
	eraCode       string
	workers       int
	outDir        string
}

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Normalize the bill feeds into classified rows with relations",
	Long: "bills merges the member-bill feed with the government/chair feed,\n" +
		"classifies each bill's process status, resolves proposer relations\n" +
		"against the member identity table, and links superseded bills to\n" +
		"their alternatives.",
	RunE: runBills,
}

func init() {
	f := billsCmd.Flags()
	f.StringVar(&billsFlags.comprehensive, "comprehensive", "", "Path to the comprehensive member feed JSON")
	f.StringVar(&billsFlags.active, "active", "", "Path to the current-members feed JSON")
	f.StringVar(&billsFlags.memberBills, "member-bills", "", "Path to the member-bill feed JSON")
	f.StringVar(&billsFlags.allBills, "all-bills", "", "Path to the all-bills feed JSON (government and chair bills)")
	f.StringVar(&billsFlags.altTable, "alt-table", "", "Path to the precomputed alternative-bill map JSON")
	f.StringVar(&billsFlags.currentTerm, "term", "22", "Current assembly term label")
	f.StringVar(&billsFlags.eraCode, "era-code", "", "Era-code prefix for short bill numbers (defaults to --term)")
	f.IntVar(&billsFlags.workers, "workers", 8, "Bills processed in parallel")
	f.StringVar(&billsFlags.outDir, "out-dir", ".", "Output directory for normalized JSON (file mode)")
	_ = billsCmd.MarkFlagRequired("comprehensive")
	_ = billsCmd.MarkFlagRequired("member-bills")
}

func runBills(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logger.New("etl.bills")

	comprehensive, err := decodeFile[models.RawMemberRecord](billsFlags.comprehensive)
	if err != nil {
		return err
	}
	var active []models.RawActiveMemberRecord
	if billsFlags.active != "" {
		if active, err = decodeFile[models.RawActiveMemberRecord](billsFlags.active); err != nil {
			return err
		}
	}
	memberBills, err := decodeFile[models.RawBillRecord](billsFlags.memberBills)
	if err != nil {
		return err
	}
	var allBills []models.RawAllBillRecord
	if billsFlags.allBills != "" {
		if allBills, err = decodeFile[models.RawAllBillRecord](billsFlags.allBills); err != nil {
			return err
		}
	}

	table := altbill.Table{}
	if billsFlags.altTable != "" {
		f, err := os.Open(billsFlags.altTable)
		if err != nil {
			return err
		}
		table, err = altbill.LoadTable(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	index, err := identity.BuildIndex(comprehensive, active, billsFlags.currentTerm, log)
	if err != nil {
		return err
	}

	eraCode := billsFlags.eraCode
	if eraCode == "" {
		eraCode = billsFlags.currentTerm
	}
	linker := altbill.NewLinker(table, eraCode, log)
	resolver := proposer.NewResolver(index, billsFlags.currentTerm, log)

	var (
		memberStore store.MemberStore
		billStore   store.BillStore
		memory      *store.Memory
	)
	if rootFlags.dsn != "" {
		pool, err := openPostgres(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		pg := store.NewPostgres(pool)
		memberStore, billStore = pg, pg
	} else {
		memory = store.NewMemory()
		memberStore, billStore = memory, memory
	}

	p := pipeline.New(index, resolver, linker, memberStore, billStore, log,
		pipeline.WithWorkers(billsFlags.workers),
	)
	summary, err := p.Run(ctx, memberBills, allBills)
	if err != nil {
		return err
	}
	fmt.Printf("run %s: %d bills, %d relations, %d links, %d resolution misses\n",
		summary.RunID, summary.Bills, summary.Relations, summary.AlternativeLinks, summary.ResolutionMisses)

	if memory == nil {
		return nil
	}

	// File mode: dump the normalized rows next to the inputs.
	bills, err := memory.ListBills(ctx, store.BillFilter{})
	if err != nil {
		return err
	}
	relations, err := memory.ListProposerRelations(ctx)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(billsFlags.outDir, "bills.json"), bills); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(billsFlags.outDir, "bill_proposers.json"), relations); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(billsFlags.outDir, "members.json"), index.Members()); err != nil {
		return err
	}
	return writeFile(filepath.Join(billsFlags.outDir, "member_eras.json"), index.Eras())
}
