package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/coperniq/prospector/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS dealer_batches (
	id           TEXT PRIMARY KEY,
	oem          TEXT NOT NULL,
	source_file  TEXT NOT NULL DEFAULT '',
	records      TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS lead_scores (
	id              TEXT PRIMARY KEY,
	contractor_name TEXT NOT NULL,
	state           TEXT NOT NULL DEFAULT '',
	total_score     INTEGER NOT NULL,
	tier            TEXT NOT NULL,
	payload         TEXT NOT NULL,
	scored_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_dealer_batches_oem ON dealer_batches(oem);
CREATE INDEX IF NOT EXISTS idx_lead_scores_total ON lead_scores(total_score);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveBatch(ctx context.Context, oem, sourceFile string, records []model.DealerRecord) (*Batch, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal records")
	}
	b := &Batch{
		ID:          uuid.NewString(),
		OEM:         oem,
		SourceFile:  sourceFile,
		RecordCount: len(records),
		CreatedAt:   time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO dealer_batches (id, oem, source_file, records, record_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.OEM, b.SourceFile, string(payload), b.RecordCount, b.CreatedAt)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: save batch")
	}
	return b, nil
}

func (s *SQLiteStore) ListBatches(ctx context.Context) ([]Batch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, oem, source_file, record_count, created_at FROM dealer_batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list batches")
	}
	defer rows.Close()

	batches := []Batch{}
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.OEM, &b.SourceFile, &b.RecordCount, &b.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan batch")
		}
		batches = append(batches, b)
	}
	return batches, eris.Wrap(rows.Err(), "sqlite: list batches")
}

func (s *SQLiteStore) LoadRecords(ctx context.Context, oems ...string) (map[string][]model.DealerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT oem, records FROM dealer_batches ORDER BY created_at ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load records")
	}
	defer rows.Close()

	want := wantOEMs(oems)
	out := map[string][]model.DealerRecord{}
	for rows.Next() {
		var oem, payload string
		if err := rows.Scan(&oem, &payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan records")
		}
		if want != nil && !want[oem] {
			continue
		}
		var records []model.DealerRecord
		if err := json.Unmarshal([]byte(payload), &records); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal batch for %s", oem)
		}
		out[oem] = append(out[oem], records...)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: load records")
}

func (s *SQLiteStore) SaveScores(ctx context.Context, scores []model.LeadScore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	// Replace the previous snapshot wholesale.
	if _, err := tx.ExecContext(ctx, `DELETE FROM lead_scores`); err != nil {
		return eris.Wrap(err, "sqlite: clear scores")
	}
	now := time.Now().UTC()
	for _, sc := range scores {
		payload, err := json.Marshal(sc)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal score")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO lead_scores (id, contractor_name, state, total_score, tier, payload, scored_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), sc.ContractorName, sc.ContractorState, sc.TotalScore, string(sc.Tier), string(payload), now)
		if err != nil {
			return eris.Wrapf(err, "sqlite: save score for %s", sc.ContractorName)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit scores")
}

func (s *SQLiteStore) TopScores(ctx context.Context, limit int) ([]model.LeadScore, error) {
	q := `SELECT payload FROM lead_scores ORDER BY total_score DESC, contractor_name ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: top scores")
	}
	defer rows.Close()

	scores := []model.LeadScore{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan score")
		}
		var sc model.LeadScore
		if err := json.Unmarshal([]byte(payload), &sc); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal score")
		}
		scores = append(scores, sc)
	}
	return scores, eris.Wrap(rows.Err(), "sqlite: top scores")
}
