package document

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aohus/political-metrics/pkg/platform/sentinel"
)

// Store persists parsed document info keyed by bill number.
type Store interface {
	Save(ctx context.Context, infos []Info) error
	FindByBillNo(ctx context.Context, billNo string) (Info, error)
}

// MemoryStore is the in-memory Store used in tests and dry runs.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Info
}

// NewMemoryStore builds an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Info)}
}

func (s *MemoryStore) Save(_ context.Context, infos []Info) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, info := range infos {
		s.docs[info.BillNo] = info
	}
	return nil
}

func (s *MemoryStore) FindByBillNo(_ context.Context, billNo string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if info, ok := s.docs[billNo]; ok {
		return info, nil
	}
	return Info{}, sentinel.ErrNotFound
}

// PostgresStore persists document info in the bill_documents table. Sections
// are stored as JSONB so the API can serve them without re-parsing.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a PostgreSQL-backed document store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, infos []Info) error {
	batch := &pgx.Batch{}
	for _, info := range infos {
		batch.Queue(`
			INSERT INTO bill_documents
				(bill_no, title, proposal_date, submission_date, is_alternative, superseded_nos, sections, full_text)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (bill_no) DO UPDATE SET
				title = EXCLUDED.title,
				proposal_date = EXCLUDED.proposal_date,
				submission_date = EXCLUDED.submission_date,
				is_alternative = EXCLUDED.is_alternative,
				superseded_nos = EXCLUDED.superseded_nos,
				sections = EXCLUDED.sections,
				full_text = EXCLUDED.full_text
		`, info.BillNo, info.Title, info.ProposalDate, info.SubmissionDate,
			info.IsAlternative, info.SupersededBillNos, info.Sections, info.FullText)
	}
	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByBillNo(ctx context.Context, billNo string) (Info, error) {
	var info Info
	err := s.db.QueryRow(ctx, `
		SELECT bill_no, title, proposal_date, submission_date, is_alternative, superseded_nos, sections, full_text
		FROM bill_documents
		WHERE bill_no = $1
	`, billNo).Scan(&info.BillNo, &info.Title, &info.ProposalDate, &info.SubmissionDate,
		&info.IsAlternative, &info.SupersededBillNos, &info.Sections, &info.FullText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Info{}, sentinel.ErrNotFound
		}
		return Info{}, fmt.Errorf("find document: %w", err)
	}
	return info, nil
}
