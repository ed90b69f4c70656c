// Package stats aggregates per-member legislation statistics from the
// normalized bill and proposer tables, with an optional Redis cache in
// front of the computation.
package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/internal/platform/metrics"
	"github.com/aohus/political-metrics/internal/platform/redis"
)

// MemberBillCount is one member's proposal record: how many bills they lead
// or co-sponsored, and how many of their lead bills passed.
type MemberBillCount struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Lead     int    `json:"lead"`
	Co       int    `json:"co"`
	Passed   int    `json:"passed"`
}

// Service computes member statistics. When a Redis client is attached,
// responses are cached under a fixed key with the configured TTL; without
// one every request recomputes from the store.
type Service struct {
	bills   store.BillStore
	members store.MemberStore

	cache   *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithCache attaches a Redis cache with the given TTL. A nil client leaves
// caching disabled.
func WithCache(cache *redis.Client, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.ttl = ttl
	}
}

// WithMetrics attaches cache hit/miss counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New builds a statistics service over the bill and member stores.
func New(bills store.BillStore, members store.MemberStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		bills:   bills,
		members: members,
		ttl:     5 * time.Minute,
		logger:  logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

const topProposersKey = "stats:members:top"

// TopProposers returns the limit members with the most lead-proposed bills,
// ties broken by member id for a stable order.
func (s *Service) TopProposers(ctx context.Context, limit int) ([]MemberBillCount, error) {
	if limit <= 0 {
		limit = 10
	}

	if cached, ok := s.fromCache(ctx); ok {
		return clamp(cached, limit), nil
	}

	counts, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, counts)
	return clamp(counts, limit), nil
}

func (s *Service) compute(ctx context.Context) ([]MemberBillCount, error) {
	relations, err := s.bills.ListProposerRelations(ctx)
	if err != nil {
		return nil, err
	}
	bills, err := s.bills.ListBills(ctx, store.BillFilter{})
	if err != nil {
		return nil, err
	}

	passed := make(map[string]bool, len(bills))
	for _, bill := range bills {
		switch bill.Status {
		case models.StatusPassedOriginal, models.StatusPassedAmended:
			passed[bill.ID] = true
		}
	}

	byMember := make(map[string]*MemberBillCount)
	for _, rel := range relations {
		switch rel.Type {
		case models.ProposerLead, models.ProposerCo:
		default:
			// Government and committee-chair relations have no member id.
			continue
		}
		count, ok := byMember[rel.ProposerID]
		if !ok {
			count = &MemberBillCount{MemberID: rel.ProposerID}
			if member, err := s.members.FindMember(ctx, rel.ProposerID); err == nil {
				count.Name = member.Name
			}
			byMember[rel.ProposerID] = count
		}
		if rel.Type == models.ProposerLead {
			count.Lead++
			if passed[rel.BillID] {
				count.Passed++
			}
		} else {
			count.Co++
		}
	}

	counts := make([]MemberBillCount, 0, len(byMember))
	for _, count := range byMember {
		counts = append(counts, *count)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Lead != counts[j].Lead {
			return counts[i].Lead > counts[j].Lead
		}
		return counts[i].MemberID < counts[j].MemberID
	})
	return counts, nil
}

func (s *Service) fromCache(ctx context.Context) ([]MemberBillCount, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, topProposersKey).Bytes()
	if err != nil {
		if s.metrics != nil {
			s.metrics.StatsCacheMisses.Inc()
		}
		return nil, false
	}
	var counts []MemberBillCount
	if err := json.Unmarshal(payload, &counts); err != nil {
		s.logger.Warn("dropping undecodable stats cache entry", "error", err)
		return nil, false
	}
	if s.metrics != nil {
		s.metrics.StatsCacheHits.Inc()
	}
	return counts, true
}

func (s *Service) toCache(ctx context.Context, counts []MemberBillCount) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, topProposersKey, payload, s.ttl).Err(); err != nil {
		// Cache writes are best effort; the store remains authoritative.
		s.logger.Warn("stats cache write failed", "error", err)
	}
}

func clamp(counts []MemberBillCount, limit int) []MemberBillCount {
	if len(counts) > limit {
		counts = counts[:limit]
	}
	out := make([]MemberBillCount, len(counts))
	copy(out, counts)
	return out
}
