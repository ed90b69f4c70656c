package store

import (
	"context"
	"sync"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/pkg/platform/sentinel"
)

// Memory is an in-memory implementation of MemberStore and BillStore.
// Saves are upserts keyed the same way the PostgreSQL store keys its rows,
// so the two implementations are interchangeable in tests.
type Memory struct {
	mu        sync.RWMutex
	members   map[string]models.Member
	eras      map[string][]models.MemberEraRecord
	bills     map[string]models.Bill
	billOrder []string
	relations map[string][]models.BillProposerRelation
	altLinks  map[string][]string
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		members:   make(map[string]models.Member),
		eras:      make(map[string][]models.MemberEraRecord),
		bills:     make(map[string]models.Bill),
		relations: make(map[string][]models.BillProposerRelation),
		altLinks:  make(map[string][]string),
	}
}

func (m *Memory) SaveMembers(_ context.Context, members []models.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range members {
		m.members[member.ID] = member
	}
	return nil
}

func (m *Memory) SaveEras(_ context.Context, eras []models.MemberEraRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, era := range eras {
		existing := m.eras[era.MemberID]
		replaced := false
		for i, e := range existing {
			if e.Term == era.Term {
				existing[i] = era
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, era)
		}
		m.eras[era.MemberID] = existing
	}
	return nil
}

func (m *Memory) FindMember(_ context.Context, id string) (models.Member, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return models.Member{}, sentinel.ErrNotFound
}

func (m *Memory) ErasByMember(_ context.Context, id string) ([]models.MemberEraRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	eras, ok := m.eras[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]models.MemberEraRecord, len(eras))
	copy(out, eras)
	return out, nil
}

func (m *Memory) SaveBills(_ context.Context, bills []models.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, bill := range bills {
		if _, ok := m.bills[bill.ID]; !ok {
			m.billOrder = append(m.billOrder, bill.ID)
		}
		m.bills[bill.ID] = bill
	}
	return nil
}

func (m *Memory) FindBill(_ context.Context, id string) (models.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if bill, ok := m.bills[id]; ok {
		return bill, nil
	}
	return models.Bill{}, sentinel.ErrNotFound
}

func (m *Memory) ListBills(_ context.Context, filter BillFilter) ([]models.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Bill
	for _, id := range m.billOrder {
		bill := m.bills[id]
		if filter.Status != "" && bill.Status != filter.Status {
			continue
		}
		if filter.Committee != "" && bill.CommitteeName != filter.Committee {
			continue
		}
		out = append(out, bill)
	}
	return out, nil
}

func (m *Memory) SaveProposerRelations(_ context.Context, relations []models.BillProposerRelation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rel := range relations {
		existing := m.relations[rel.BillID]
		replaced := false
		for i, r := range existing {
			if r.ProposerID == rel.ProposerID && r.Type == rel.Type {
				existing[i] = rel
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, rel)
		}
		m.relations[rel.BillID] = existing
	}
	return nil
}

func (m *Memory) ProposersByBill(_ context.Context, billID string) ([]models.BillProposerRelation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	relations, ok := m.relations[billID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]models.BillProposerRelation, len(relations))
	copy(out, relations)
	return out, nil
}

func (m *Memory) ListProposerRelations(_ context.Context) ([]models.BillProposerRelation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.BillProposerRelation
	for _, id := range m.billOrder {
		out = append(out, m.relations[id]...)
	}
	return out, nil
}

func (m *Memory) SaveAlternativeLinks(_ context.Context, links []models.AlternativeBillLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, link := range links {
		successors := make([]string, len(link.SuccessorBillNos))
		copy(successors, link.SuccessorBillNos)
		m.altLinks[link.SupersededBillNo] = successors
	}
	return nil
}

func (m *Memory) AlternativeLinks(_ context.Context, supersededBillNo string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	successors, ok := m.altLinks[supersededBillNo]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]string, len(successors))
	copy(out, successors)
	return out, nil
}
