// Package pipeline drives bill normalization: it merges the raw bill feeds,
// classifies each bill, resolves proposer relations and alternative-bill
// links, and persists the results.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aohus/political-metrics/internal/assembly/altbill"
	"github.com/aohus/political-metrics/internal/assembly/identity"
	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/internal/assembly/proposer"
	"github.com/aohus/political-metrics/internal/assembly/status"
	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/internal/platform/metrics"
)

const defaultWorkers = 8

// Pipeline normalizes raw bill feeds into store rows. The identity index is
// built before the pipeline exists, so every worker only reads shared
// immutable lookups.
type Pipeline struct {
	index    *identity.Index
	resolver *proposer.Resolver
	linker   *altbill.Linker
	members  store.MemberStore
	bills    store.BillStore

	logger  *slog.Logger
	metrics *metrics.Metrics
	workers int
	today   func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers bounds the number of bills processed in parallel.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithToday overrides the classification date for testability.
func WithToday(today func() string) Option {
	return func(p *Pipeline) {
		if today != nil {
			p.today = today
		}
	}
}

// New builds a pipeline over an already-built identity index.
func New(
	index *identity.Index,
	resolver *proposer.Resolver,
	linker *altbill.Linker,
	members store.MemberStore,
	bills store.BillStore,
	logger *slog.Logger,
	opts ...Option,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		index:    index,
		resolver: resolver,
		linker:   linker,
		members:  members,
		bills:    bills,
		logger:   logger,
		workers:  defaultWorkers,
		today: func() string {
			return time.Now().Format("2006-01-02T15:04:05")
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Summary reports what one pipeline run produced.
type Summary struct {
	RunID            string
	Bills            int
	Relations        int
	AlternativeLinks int
	ResolutionMisses int
	AltLinkMisses    int
	Fallbacks        int
}

// billResult is one bill's normalized output, accumulated under a lock.
type billResult struct {
	bill      models.Bill
	relations []models.BillProposerRelation
	link      *models.AlternativeBillLink
	misses    int
	fallback  bool
}

// Run normalizes the merged bill feeds and persists the results. Per-bill
// failures are isolated: a malformed record degrades to OTHER and is logged,
// never cancelling its siblings. Only store writes can fail the run.
func (p *Pipeline) Run(ctx context.Context, memberBills []models.RawBillRecord, allBills []models.RawAllBillRecord) (Summary, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	today := p.today()

	merged := p.merge(memberBills, allBills)
	logger.Info("starting bill normalization",
		"bills", len(merged),
		"identities", p.index.Len(),
	)

	if err := p.members.SaveMembers(ctx, p.index.Members()); err != nil {
		return Summary{}, err
	}
	if err := p.members.SaveEras(ctx, p.index.Eras()); err != nil {
		return Summary{}, err
	}

	var (
		mu      sync.Mutex
		results []billResult
	)
	// The errgroup-derived context is cancelled once Wait returns, so the
	// post-Wait store writes keep using the caller's ctx.
	g, workCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, raw := range merged {
		raw := raw
		g.Go(func() error {
			if err := workCtx.Err(); err != nil {
				return err
			}
			result := p.processBill(raw, today, logger)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{RunID: runID, Bills: len(results)}
	bills := make([]models.Bill, 0, len(results))
	var relations []models.BillProposerRelation
	var links []models.AlternativeBillLink
	for _, r := range results {
		bills = append(bills, r.bill)
		relations = append(relations, r.relations...)
		if r.link != nil {
			links = append(links, *r.link)
		}
		summary.ResolutionMisses += r.misses
		if r.fallback {
			summary.Fallbacks++
		}
	}
	summary.Relations = len(relations)
	summary.AlternativeLinks = len(links)

	if err := p.bills.SaveBills(ctx, bills); err != nil {
		return Summary{}, err
	}
	if err := p.bills.SaveProposerRelations(ctx, relations); err != nil {
		return Summary{}, err
	}
	if err := p.bills.SaveAlternativeLinks(ctx, links); err != nil {
		return Summary{}, err
	}

	for _, link := range links {
		if len(link.SuccessorBillNos) == 0 {
			summary.AltLinkMisses++
		}
	}

	logger.Info("bill normalization finished",
		"bills", summary.Bills,
		"relations", summary.Relations,
		"alternative_links", summary.AlternativeLinks,
		"resolution_misses", summary.ResolutionMisses,
		"classification_fallbacks", summary.Fallbacks,
	)
	return summary, nil
}

// merge combines the member-bill feed with the renamed government/chair feed.
func (p *Pipeline) merge(memberBills []models.RawBillRecord, allBills []models.RawAllBillRecord) []models.RawBillRecord {
	merged := make([]models.RawBillRecord, 0, len(memberBills)+len(allBills))
	merged = append(merged, memberBills...)
	for _, raw := range allBills {
		if normalized, keep := raw.Normalize(); keep {
			merged = append(merged, normalized)
		}
	}
	return merged
}

func (p *Pipeline) processBill(raw models.RawBillRecord, today string, logger *slog.Logger) billResult {
	result := billResult{}

	billStatus, err := status.Classify(raw, today)
	if err != nil {
		result.fallback = true
		logger.Warn("bill classified as OTHER after stage-date error",
			"bill_id", raw.BillID,
			"bill_no", raw.BillNo,
			"error", err,
		)
	}
	if p.metrics != nil {
		p.metrics.BillsClassified.WithLabelValues(string(billStatus)).Inc()
	}

	result.bill = models.Bill{
		ID:            raw.BillID,
		No:            raw.BillNo,
		Term:          raw.Term,
		Name:          raw.Name,
		CommitteeName: raw.Committee,
		Status:        billStatus,
		ProposeDate:   raw.ProposeDate,
		DecisionDate:  raw.DecisionDate,
	}

	if billStatus.IsSuperseded() {
		successors := p.linker.Link(raw.BillNo)
		if p.metrics != nil && len(successors) == 0 {
			p.metrics.AltLinkMisses.Inc()
		}
		result.link = &models.AlternativeBillLink{
			SupersededBillNo: raw.BillNo,
			SuccessorBillNos: successors,
		}
	}

	result.relations, result.misses = p.resolver.Relations(raw)
	if p.metrics != nil && result.misses > 0 {
		p.metrics.ResolutionMisses.Add(float64(result.misses))
	}
	return result
}
