package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the normalized assembly schema. Statements are idempotent so
// EnsureSchema can run on every start.
const schema = `
CREATE TABLE IF NOT EXISTS members (
	member_id TEXT PRIMARY KEY,
	name      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS member_eras (
	member_id     TEXT NOT NULL REFERENCES members (member_id),
	term          TEXT NOT NULL,
	name          TEXT NOT NULL,
	party         TEXT NOT NULL DEFAULT '',
	district      TEXT NOT NULL DEFAULT '',
	district_type TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (member_id, term)
);

CREATE TABLE IF NOT EXISTS bills (
	bill_id        TEXT PRIMARY KEY,
	bill_no        TEXT NOT NULL,
	term           TEXT NOT NULL DEFAULT '',
	name           TEXT NOT NULL,
	committee_name TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	propose_date   TEXT NOT NULL DEFAULT '',
	decision_date  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS bills_status_idx ON bills (status);
CREATE INDEX IF NOT EXISTS bills_committee_idx ON bills (committee_name);

CREATE TABLE IF NOT EXISTS bill_proposers (
	bill_id       TEXT NOT NULL,
	proposer_id   TEXT NOT NULL,
	proposer_type TEXT NOT NULL,
	PRIMARY KEY (bill_id, proposer_id, proposer_type)
);

CREATE INDEX IF NOT EXISTS bill_proposers_proposer_idx ON bill_proposers (proposer_id);

CREATE TABLE IF NOT EXISTS alternative_bill_links (
	superseded_bill_no TEXT PRIMARY KEY,
	successor_bill_nos TEXT[] NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_documents (
	bill_no         TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	proposal_date   TEXT NOT NULL DEFAULT '',
	submission_date TEXT NOT NULL DEFAULT '',
	is_alternative  BOOLEAN NOT NULL DEFAULT FALSE,
	superseded_nos  TEXT[] NOT NULL DEFAULT '{}',
	sections        JSONB NOT NULL DEFAULT '{}',
	full_text       TEXT NOT NULL DEFAULT ''
);
`

// EnsureSchema creates the assembly tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
