// Package store persists normalized assembly entities. Implementations come
// in pairs: an in-memory store for tests and pipeline dry runs, and a
// PostgreSQL store for the real deployment.
package store

import (
	"context"

	"github.com/aohus/political-metrics/internal/assembly/models"
)

// BillFilter narrows ListBills. Zero values match everything.
type BillFilter struct {
	Status    models.BillStatus
	Committee string
}

// MemberStore persists member identities and their per-term era records.
type MemberStore interface {
	SaveMembers(ctx context.Context, members []models.Member) error
	SaveEras(ctx context.Context, eras []models.MemberEraRecord) error
	FindMember(ctx context.Context, id string) (models.Member, error)
	ErasByMember(ctx context.Context, id string) ([]models.MemberEraRecord, error)
}

// BillStore persists normalized bills, their proposer relations, and
// alternative-bill links.
type BillStore interface {
	SaveBills(ctx context.Context, bills []models.Bill) error
	FindBill(ctx context.Context, id string) (models.Bill, error)
	ListBills(ctx context.Context, filter BillFilter) ([]models.Bill, error)

	SaveProposerRelations(ctx context.Context, relations []models.BillProposerRelation) error
	ProposersByBill(ctx context.Context, billID string) ([]models.BillProposerRelation, error)
	ListProposerRelations(ctx context.Context) ([]models.BillProposerRelation, error)

	SaveAlternativeLinks(ctx context.Context, links []models.AlternativeBillLink) error
	AlternativeLinks(ctx context.Context, supersededBillNo string) ([]string, error)
}
