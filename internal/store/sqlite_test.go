package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coperniq/prospector/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRecords() []model.DealerRecord {
	a := model.NewDealerRecord("ABC Electric", "5551234567", "abcelectric.com")
	a.State = "CA"
	b := model.NewDealerRecord("XYZ Solar", "5559876543", "xyzsolar.com")
	b.State = "TX"
	return []model.DealerRecord{a, b}
}

func testScores() []model.LeadScore {
	return []model.LeadScore{
		{
			ContractorName:  "ABC Electric",
			ContractorState: "CA",
			OEMSources:      []string{"Generac", "Kohler"},
			Components:      map[string]int{model.DimMultiOEM: 30},
			Breakdown:       map[string]string{model.DimMultiOEM: "2 OEM brands"},
			TotalScore:      85,
			Tier:            model.TierHigh,
		},
		{
			ContractorName:  "XYZ Solar",
			ContractorState: "TX",
			OEMSources:      []string{"Enphase"},
			Components:      map[string]int{model.DimMultiOEM: 8},
			TotalScore:      30,
			Tier:            model.TierLow,
		},
	}
}

func TestSQLiteStore_SaveAndListBatches(t *testing.T) {
	t.Parallel()
	s := newTestSQLite(t)
	ctx := context.Background()

	batch, err := s.SaveBatch(ctx, "Generac", "generac.json", testRecords())
	require.NoError(t, err)
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "Generac", batch.OEM)
	assert.Equal(t, 2, batch.RecordCount)

	batches, err := s.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, batch.ID, batches[0].ID)
	assert.Equal(t, "generac.json", batches[0].SourceFile)
	assert.False(t, batches[0].CreatedAt.IsZero())
}

func TestSQLiteStore_ListBatches_Empty(t *testing.T) {
	t.Parallel()
	s := newTestSQLite(t)

	batches, err := s.ListBatches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, batches)
	assert.NotNil(t, batches)
}

func TestSQLiteStore_LoadRecords(t *testing.T) {
	t.Parallel()
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.SaveBatch(ctx, "Generac", "generac.json", testRecords())
	require.NoError(t, err)
	_, err = s.SaveBatch(ctx, "Kohler", "kohler.csv", testRecords()[:1])
	require.NoError(t, err)
	// A second batch for the same OEM concatenates.
	_, err = s.SaveBatch(ctx, "Generac", "generac2.json", testRecords()[:1])
	require.NoError(t, err)

	byOEM, err := s.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, byOEM, 2)
	assert.Len(t, byOEM["Generac"], 3)
	assert.Len(t, byOEM["Kohler"], 1)
	assert.Equal(t, "ABC Electric", byOEM["Kohler"][0].Name)

	// Filtered load.
	onlyKohler, err := s.LoadRecords(ctx, "Kohler")
	require.NoError(t, err)
	require.Len(t, onlyKohler, 1)
	assert.Len(t, onlyKohler["Kohler"], 1)
}

func TestSQLiteStore_SaveScores_ReplacesSnapshot(t *testing.T) {
	t.Parallel()
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SaveScores(ctx, testScores()))

	// Second snapshot with one score replaces the first entirely.
	require.NoError(t, s.SaveScores(ctx, testScores()[:1]))

	scores, err := s.TopScores(ctx, 0)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "ABC Electric", scores[0].ContractorName)
}

func TestSQLiteStore_TopScores(t *testing.T) {
	t.Parallel()
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SaveScores(ctx, testScores()))

	scores, err := s.TopScores(ctx, 0)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "ABC Electric", scores[0].ContractorName, "highest score first")
	assert.Equal(t, 85, scores[0].TotalScore)
	assert.Equal(t, model.TierHigh, scores[0].Tier)
	assert.Equal(t, map[string]int{model.DimMultiOEM: 30}, scores[0].Components)

	limited, err := s.TopScores(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteStore_TopScores_Empty(t *testing.T) {
	t.Parallel()
	s := newTestSQLite(t)

	scores, err := s.TopScores(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.NotNil(t, scores)
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "oracle", "dsn")
	assert.ErrorContains(t, err, "unknown driver")
}

func TestOpen_SQLite(t *testing.T) {
	t.Parallel()

	st, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, st.Close())
}
