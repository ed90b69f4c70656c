// Package proposer turns a bill's raw sponsor fields into typed
// bill-proposer relation rows.
package proposer

import (
	"log/slog"

	"github.com/aohus/political-metrics/internal/assembly/identity"
	"github.com/aohus/political-metrics/internal/assembly/models"
	pstrings "github.com/aohus/political-metrics/pkg/platform/strings"
)

// Resolver resolves proposer name lists against the member identity index.
// The index must be fully built before the first Relations call; after that
// the resolver is safe for concurrent use.
type Resolver struct {
	index       *identity.Index
	defaultTerm string
	logger      *slog.Logger
}

// NewResolver builds a resolver. defaultTerm is the assembly term used for
// name lookups when the bill row itself carries no term.
func NewResolver(index *identity.Index, defaultTerm string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{index: index, defaultTerm: defaultTerm, logger: logger}
}

// Relations produces the proposer relation rows for one bill record.
//
// Government bills get the fixed sentinel proposer id and committee-chair
// bills the proposing committee's id; neither consults the identity index.
// Member bills resolve each listed name, collapsing duplicates within a
// list; a name that cannot be resolved is logged and dropped, and misses
// reports how many were.
func (r *Resolver) Relations(bill models.RawBillRecord) (relations []models.BillProposerRelation, misses int) {
	switch bill.ProposerKind {
	case models.KindGovernment:
		return []models.BillProposerRelation{{
			BillID:     bill.BillID,
			ProposerID: models.GovernmentProposerID,
			Type:       models.ProposerGovernment,
		}}, 0
	case models.KindCommitteeChair:
		return []models.BillProposerRelation{{
			BillID:     bill.BillID,
			ProposerID: bill.CommitteeID,
			Type:       models.ProposerCommitteeChair,
		}}, 0
	}

	term := bill.Term
	if term == "" {
		term = r.defaultTerm
	}
	for _, name := range pstrings.DedupeAndTrim(pstrings.SplitTrim(bill.LeadProposers, ",")) {
		relations, misses = r.appendMember(relations, misses, bill.BillID, name, term, models.ProposerLead)
	}
	for _, name := range pstrings.DedupeAndTrim(pstrings.SplitTrim(bill.CoProposers, ",")) {
		relations, misses = r.appendMember(relations, misses, bill.BillID, name, term, models.ProposerCo)
	}
	return relations, misses
}

func (r *Resolver) appendMember(relations []models.BillProposerRelation, misses int, billID, name, term string, typ models.ProposerType) ([]models.BillProposerRelation, int) {
	id, ok := r.index.Resolve(name, term)
	if !ok {
		r.logger.Error("proposer name did not resolve to a member",
			"bill_id", billID,
			"proposer", name,
			"term", term,
		)
		return relations, misses + 1
	}
	return append(relations, models.BillProposerRelation{
		BillID:     billID,
		ProposerID: id,
		Type:       typ,
	}), misses
}
