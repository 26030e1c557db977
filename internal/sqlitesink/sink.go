// Package sqlitesink stores enriched report rows in a SQLite database so
// several samples and runs can be queried together.
package sqlitesink

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"kreport/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS taxa (
	run_id      TEXT    NOT NULL,
	sample      TEXT    NOT NULL,
	row_index   INTEGER NOT NULL,
	domain      TEXT    NOT NULL,
	rank        TEXT    NOT NULL,
	tax_id      INTEGER NOT NULL,
	name        TEXT    NOT NULL,
	depth       INTEGER NOT NULL,
	percent     REAL    NOT NULL,
	reads_clade INTEGER NOT NULL,
	reads_taxon INTEGER NOT NULL,
	lineage     TEXT    NOT NULL,
	PRIMARY KEY (run_id, row_index)
);
CREATE INDEX IF NOT EXISTS taxa_sample_rank ON taxa (sample, rank);
`

// Sink is an open database.
type Sink struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &Sink{db: db}, nil
}

// Close closes the database.
func (s *Sink) Close() error { return s.db.Close() }

// Store inserts recs in one transaction, tagged with runID and sample.
// Relative abundance is not stored: it depends on the subset queried.
func (s *Sink) Store(ctx context.Context, runID, sample string, recs []report.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO taxa
		(run_id, sample, row_index, domain, rank, tax_id, name, depth, percent, reads_clade, reads_taxon, lineage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	// report.ParseLine bounds counts to 63 bits, so the int64 conversions are exact.
	for i, r := range recs {
		if _, err := stmt.ExecContext(ctx, runID, sample, i, r.Domain, r.Rank,
			int64(r.TaxID), r.Name, r.Depth, r.Percent,
			int64(r.ReadsClade), int64(r.ReadsTaxon), r.Lineage); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// Count returns the number of rows stored for sample.
func (s *Sink) Count(ctx context.Context, sample string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM taxa WHERE sample = ?`, sample).Scan(&n)
	return n, err
}
