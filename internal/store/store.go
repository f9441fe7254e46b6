// Package store persists imported dealer batches and computed lead scores.
// Two backends are provided: SQLite for local single-user runs and Postgres
// for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/coperniq/prospector/internal/model"
)

// Batch describes one imported dealer roster: a single OEM source file
// captured at a point in time.
type Batch struct {
	ID          string    `json:"id"`
	OEM         string    `json:"oem"`
	SourceFile  string    `json:"source_file"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store defines the persistence interface for the prospecting pipeline.
type Store interface {
	// Batches
	SaveBatch(ctx context.Context, oem, sourceFile string, records []model.DealerRecord) (*Batch, error)
	ListBatches(ctx context.Context) ([]Batch, error)
	// LoadRecords returns all stored records grouped by OEM. With no
	// arguments every OEM is loaded; otherwise only the named ones.
	LoadRecords(ctx context.Context, oems ...string) (map[string][]model.DealerRecord, error)

	// Scores. SaveScores replaces the previous snapshot so TopScores
	// always reflects the most recent scoring run.
	SaveScores(ctx context.Context, scores []model.LeadScore) error
	TopScores(ctx context.Context, limit int) ([]model.LeadScore, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the given driver. Supported drivers are
// "sqlite" and "postgres".
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

func wantOEMs(oems []string) map[string]bool {
	if len(oems) == 0 {
		return nil
	}
	want := make(map[string]bool, len(oems))
	for _, o := range oems {
		want[o] = true
	}
	return want
}
