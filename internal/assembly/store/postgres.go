package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/pkg/platform/sentinel"
)

// Postgres implements MemberStore and BillStore over a pgx pool. All saves
// are idempotent upserts so re-running a pipeline converges instead of
// erroring.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres builds a PostgreSQL-backed store.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) SaveMembers(ctx context.Context, members []models.Member) error {
	batch := &pgx.Batch{}
	for _, m := range members {
		batch.Queue(`
			INSERT INTO members (member_id, name)
			VALUES ($1, $2)
			ON CONFLICT (member_id) DO UPDATE SET name = EXCLUDED.name
		`, m.ID, m.Name)
	}
	if err := p.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save members: %w", err)
	}
	return nil
}

func (p *Postgres) SaveEras(ctx context.Context, eras []models.MemberEraRecord) error {
	batch := &pgx.Batch{}
	for _, e := range eras {
		batch.Queue(`
			INSERT INTO member_eras (member_id, term, name, party, district, district_type, role)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (member_id, term) DO UPDATE SET
				name = EXCLUDED.name,
				party = EXCLUDED.party,
				district = EXCLUDED.district,
				district_type = EXCLUDED.district_type,
				role = EXCLUDED.role
		`, e.MemberID, e.Term, e.Name, e.Party, e.District, e.DistrictType, e.Role)
	}
	if err := p.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save member eras: %w", err)
	}
	return nil
}

func (p *Postgres) FindMember(ctx context.Context, id string) (models.Member, error) {
	var m models.Member
	err := p.db.QueryRow(ctx,
		`SELECT member_id, name FROM members WHERE member_id = $1`, id,
	).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Member{}, sentinel.ErrNotFound
		}
		return models.Member{}, fmt.Errorf("find member: %w", err)
	}
	return m, nil
}

func (p *Postgres) ErasByMember(ctx context.Context, id string) ([]models.MemberEraRecord, error) {
	rows, err := p.db.Query(ctx, `
		SELECT member_id, term, name, party, district, district_type, role
		FROM member_eras
		WHERE member_id = $1
		ORDER BY term
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list member eras: %w", err)
	}
	defer rows.Close()

	var eras []models.MemberEraRecord
	for rows.Next() {
		var e models.MemberEraRecord
		if err := rows.Scan(&e.MemberID, &e.Term, &e.Name, &e.Party, &e.District, &e.DistrictType, &e.Role); err != nil {
			return nil, fmt.Errorf("scan member era: %w", err)
		}
		eras = append(eras, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list member eras: %w", err)
	}
	if len(eras) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return eras, nil
}

func (p *Postgres) SaveBills(ctx context.Context, bills []models.Bill) error {
	batch := &pgx.Batch{}
	for _, b := range bills {
		batch.Queue(`
			INSERT INTO bills (bill_id, bill_no, term, name, committee_name, status, propose_date, decision_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (bill_id) DO UPDATE SET
				bill_no = EXCLUDED.bill_no,
				term = EXCLUDED.term,
				name = EXCLUDED.name,
				committee_name = EXCLUDED.committee_name,
				status = EXCLUDED.status,
				propose_date = EXCLUDED.propose_date,
				decision_date = EXCLUDED.decision_date
		`, b.ID, b.No, b.Term, b.Name, b.CommitteeName, string(b.Status), b.ProposeDate, b.DecisionDate)
	}
	if err := p.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save bills: %w", err)
	}
	return nil
}

func (p *Postgres) FindBill(ctx context.Context, id string) (models.Bill, error) {
	var b models.Bill
	var status string
	err := p.db.QueryRow(ctx, `
		SELECT bill_id, bill_no, term, name, committee_name, status, propose_date, decision_date
		FROM bills WHERE bill_id = $1
	`, id).Scan(&b.ID, &b.No, &b.Term, &b.Name, &b.CommitteeName, &status, &b.ProposeDate, &b.DecisionDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bill{}, sentinel.ErrNotFound
		}
		return models.Bill{}, fmt.Errorf("find bill: %w", err)
	}
	b.Status = models.BillStatus(status)
	return b, nil
}

func (p *Postgres) ListBills(ctx context.Context, filter BillFilter) ([]models.Bill, error) {
	rows, err := p.db.Query(ctx, `
		SELECT bill_id, bill_no, term, name, committee_name, status, propose_date, decision_date
		FROM bills
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR committee_name = $2)
		ORDER BY bill_no
	`, string(filter.Status), filter.Committee)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		var status string
		if err := rows.Scan(&b.ID, &b.No, &b.Term, &b.Name, &b.CommitteeName, &status, &b.ProposeDate, &b.DecisionDate); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		b.Status = models.BillStatus(status)
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

func (p *Postgres) SaveProposerRelations(ctx context.Context, relations []models.BillProposerRelation) error {
	batch := &pgx.Batch{}
	for _, r := range relations {
		batch.Queue(`
			INSERT INTO bill_proposers (bill_id, proposer_id, proposer_type)
			VALUES ($1, $2, $3)
			ON CONFLICT (bill_id, proposer_id, proposer_type) DO NOTHING
		`, r.BillID, r.ProposerID, string(r.Type))
	}
	if err := p.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save proposer relations: %w", err)
	}
	return nil
}

func (p *Postgres) ProposersByBill(ctx context.Context, billID string) ([]models.BillProposerRelation, error) {
	rows, err := p.db.Query(ctx, `
		SELECT bill_id, proposer_id, proposer_type
		FROM bill_proposers
		WHERE bill_id = $1
		ORDER BY proposer_type, proposer_id
	`, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill proposers: %w", err)
	}
	defer rows.Close()

	relations, err := scanRelations(rows)
	if err != nil {
		return nil, err
	}
	if len(relations) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return relations, nil
}

func (p *Postgres) ListProposerRelations(ctx context.Context) ([]models.BillProposerRelation, error) {
	rows, err := p.db.Query(ctx, `
		SELECT bill_id, proposer_id, proposer_type
		FROM bill_proposers
		ORDER BY bill_id, proposer_type, proposer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list proposer relations: %w", err)
	}
	defer rows.Close()
	return scanRelations(rows)
}

func scanRelations(rows pgx.Rows) ([]models.BillProposerRelation, error) {
	var relations []models.BillProposerRelation
	for rows.Next() {
		var r models.BillProposerRelation
		var typ string
		if err := rows.Scan(&r.BillID, &r.ProposerID, &typ); err != nil {
			return nil, fmt.Errorf("scan proposer relation: %w", err)
		}
		r.Type = models.ProposerType(typ)
		relations = append(relations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read proposer relations: %w", err)
	}
	return relations, nil
}

func (p *Postgres) SaveAlternativeLinks(ctx context.Context, links []models.AlternativeBillLink) error {
	batch := &pgx.Batch{}
	for _, l := range links {
		batch.Queue(`
			INSERT INTO alternative_bill_links (superseded_bill_no, successor_bill_nos)
			VALUES ($1, $2)
			ON CONFLICT (superseded_bill_no) DO UPDATE SET
				successor_bill_nos = EXCLUDED.successor_bill_nos
		`, l.SupersededBillNo, l.SuccessorBillNos)
	}
	if err := p.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save alternative links: %w", err)
	}
	return nil
}

func (p *Postgres) AlternativeLinks(ctx context.Context, supersededBillNo string) ([]string, error) {
	var successors []string
	err := p.db.QueryRow(ctx, `
		SELECT successor_bill_nos FROM alternative_bill_links WHERE superseded_bill_no = $1
	`, supersededBillNo).Scan(&successors)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find alternative links: %w", err)
	}
	return successors, nil
}
