package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/coperniq/prospector/internal/db"
	"github.com/coperniq/prospector/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. Tests substitute a
// pgxmock pool through the same interface.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_batch": `INSERT INTO dealer_batches (id, oem, source_file, records, record_count, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
	"list_batches": `SELECT id, oem, source_file, record_count, created_at FROM dealer_batches ORDER BY created_at DESC`,
	"load_records": `SELECT oem, records FROM dealer_batches ORDER BY created_at ASC`,
	"top_scores":   `SELECT payload FROM lead_scores ORDER BY total_score DESC, contractor_name ASC LIMIT $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS dealer_batches (
	id           TEXT PRIMARY KEY,
	oem          TEXT NOT NULL,
	source_file  TEXT NOT NULL DEFAULT '',
	records      JSONB NOT NULL,
	record_count INTEGER NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS lead_scores (
	id              TEXT PRIMARY KEY,
	contractor_name TEXT NOT NULL,
	state           TEXT NOT NULL DEFAULT '',
	total_score     INTEGER NOT NULL,
	tier            TEXT NOT NULL,
	payload         JSONB NOT NULL,
	scored_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_dealer_batches_oem ON dealer_batches(oem);
CREATE INDEX IF NOT EXISTS idx_lead_scores_total ON lead_scores(total_score DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveBatch(ctx context.Context, oem, sourceFile string, records []model.DealerRecord) (*Batch, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal records")
	}
	b := &Batch{
		ID:          uuid.NewString(),
		OEM:         oem,
		SourceFile:  sourceFile,
		RecordCount: len(records),
		CreatedAt:   time.Now().UTC(),
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO dealer_batches (id, oem, source_file, records, record_count, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.OEM, b.SourceFile, payload, b.RecordCount, b.CreatedAt)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: save batch")
	}
	return b, nil
}

func (s *PostgresStore) ListBatches(ctx context.Context) ([]Batch, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, oem, source_file, record_count, created_at FROM dealer_batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list batches")
	}
	defer rows.Close()

	batches := []Batch{}
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.OEM, &b.SourceFile, &b.RecordCount, &b.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan batch")
		}
		batches = append(batches, b)
	}
	return batches, eris.Wrap(rows.Err(), "postgres: list batches")
}

func (s *PostgresStore) LoadRecords(ctx context.Context, oems ...string) (map[string][]model.DealerRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT oem, records FROM dealer_batches ORDER BY created_at ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load records")
	}
	defer rows.Close()

	want := wantOEMs(oems)
	out := map[string][]model.DealerRecord{}
	for rows.Next() {
		var oem string
		var payload []byte
		if err := rows.Scan(&oem, &payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan records")
		}
		if want != nil && !want[oem] {
			continue
		}
		var records []model.DealerRecord
		if err := json.Unmarshal(payload, &records); err != nil {
			return nil, eris.Wrapf(err, "postgres: unmarshal batch for %s", oem)
		}
		out[oem] = append(out[oem], records...)
	}
	return out, eris.Wrap(rows.Err(), "postgres: load records")
}

// scoreColumns is the COPY column order for lead_scores inserts.
var scoreColumns = []string{"id", "contractor_name", "state", "total_score", "tier", "payload", "scored_at"}

func (s *PostgresStore) SaveScores(ctx context.Context, scores []model.LeadScore) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx)

	// Replace the previous snapshot wholesale.
	if _, err := tx.Exec(ctx, `DELETE FROM lead_scores`); err != nil {
		return eris.Wrap(err, "postgres: clear scores")
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(scores))
	for _, sc := range scores {
		payload, err := json.Marshal(sc)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal score for %s", sc.ContractorName)
		}
		rows = append(rows, []any{
			uuid.NewString(), sc.ContractorName, sc.ContractorState,
			sc.TotalScore, string(sc.Tier), payload, now,
		})
	}
	if _, err := db.CopyFrom(ctx, tx, "lead_scores", scoreColumns, rows); err != nil {
		return err
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit scores")
}

func (s *PostgresStore) TopScores(ctx context.Context, limit int) ([]model.LeadScore, error) {
	q := `SELECT payload FROM lead_scores ORDER BY total_score DESC, contractor_name ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: top scores")
	}
	defer rows.Close()

	scores := []model.LeadScore{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan score")
		}
		var sc model.LeadScore
		if err := json.Unmarshal(payload, &sc); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal score")
		}
		scores = append(scores, sc)
	}
	return scores, eris.Wrap(rows.Err(), "postgres: top scores")
}
