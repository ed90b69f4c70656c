// etl normalizes raw National Assembly feed files: member identities, bill
// records, and bill-proposal documents. Each subcommand reads already-fetched
// JSON or text files and writes normalized JSON or loads PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/internal/platform/logger"
)

var rootFlags struct {
	dsn       string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "etl",
	Short: "Normalize National Assembly open data feeds",
	Long: "etl turns raw National Assembly feed files into normalized records:\n" +
		"member identities and era histories, classified bill rows with proposer\n" +
		"relations and alternative-bill links, and parsed bill documents.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.Init(slog.LevelInfo, rootFlags.logFormat)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.dsn, "dsn", os.Getenv("ASSEMBLY_POSTGRES_DSN"), "PostgreSQL DSN; when empty, output goes to JSON files")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(billsCmd)
	rootCmd.AddCommand(documentsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// decodeFile reads a JSON array of feed records.
func decodeFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []T
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}

// writeFile writes v as indented JSON.
func writeFile(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}

// openPostgres connects, ensures the schema, and returns the pool. The
// caller closes it.
func openPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, rootFlags.dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}
	if err := store.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
