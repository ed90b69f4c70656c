package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aohus/political-metrics/internal/document"
	"github.com/aohus/political-metrics/internal/platform/logger"
	"github.com/aohus/political-metrics/internal/platform/metrics"
)

var documentsFlags struct {
	dir     string
	out     string
	workers int
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Parse bill-proposal text files into sections and metadata",
	Long: "documents reads the plain-text files produced by PDF conversion,\n" +
		"one file per bill named <bill_no>_<title>.txt, and extracts dates,\n" +
		"alternative-bill references, and named sections from each.",
	RunE: runDocuments,
}

func init() {
	f := documentsCmd.Flags()
	f.StringVar(&documentsFlags.dir, "dir", "", "Directory of converted bill text files")
	f.StringVar(&documentsFlags.out, "out", "documents.json", "Output path for parsed documents (file mode)")
	f.IntVar(&documentsFlags.workers, "workers", 10, "Documents parsed in parallel")
	_ = documentsCmd.MarkFlagRequired("dir")
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logger.New("etl.documents")
	m := metrics.New()
	extractor := document.NewExtractor(log, document.WithMetrics(m))

	entries, err := os.ReadDir(documentsFlags.dir)
	if err != nil {
		return err
	}

	var (
		mu     sync.Mutex
		infos  []document.Info
		failed int
	)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(documentsFlags.workers)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		entry := entry
		g.Go(func() error {
			path := filepath.Join(documentsFlags.dir, entry.Name())
			text, err := os.ReadFile(path)
			if err != nil {
				// Unreadable files are skipped, not fatal to the batch.
				log.Error("reading document failed", "path", path, "error", err)
				m.DocumentsFailed.Inc()
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			title := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			info := extractor.Parse(title, string(text))
			mu.Lock()
			infos = append(infos, info)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("documents parsed", "parsed", len(infos), "failed", failed)

	if rootFlags.dsn == "" {
		return writeFile(documentsFlags.out, infos)
	}

	pool, err := openPostgres(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := document.NewPostgresStore(pool).Save(ctx, infos); err != nil {
		return err
	}
	fmt.Printf("loaded %d documents (%d failed)\n", len(infos), failed)
	return nil
}
