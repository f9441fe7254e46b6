package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/coperniq/prospector/internal/model"
)

func sampleScores() []model.LeadScore {
	return []model.LeadScore{
		{
			ContractorName:   "ABC Electric",
			ContractorPhone:  "(555) 123-4567",
			ContractorDomain: "abcelectric.com",
			ContractorState:  "CA",
			OEMSources:       []string{"Generac", "Kohler", "Tesla"},
			Components: map[string]int{
				model.DimMultiOEM:   40,
				model.DimIncentive:  20,
				model.DimCommercial: 15,
				model.DimGeographic: 10,
				model.DimUrgency:    10,
				model.DimOMBonus:    20,
				model.DimTradeBonus: 25,
			},
			Breakdown: map[string]string{
				model.DimMultiOEM:  "3+ OEM brands",
				model.DimIncentive: "California - HIGH priority",
			},
			TotalScore: 140,
			Tier:       model.TierHot,
		},
		{
			ContractorName:  "Solo Solar",
			ContractorPhone: "5550001111",
			ContractorState: "WY",
			OEMSources:      []string{"Enphase"},
			Components: map[string]int{
				model.DimMultiOEM: 8,
			},
			Breakdown:  map[string]string{model.DimMultiOEM: "1 OEM brand"},
			TotalScore: 15,
			Tier:       model.TierLow,
		},
	}
}

func TestHeader(t *testing.T) {
	t.Parallel()

	header := Header()
	assert.Equal(t, "rank", header[0])
	assert.Equal(t, "contractor", header[1])
	assert.Contains(t, header, "multi_oem")
	assert.Contains(t, header, "total_score")
	assert.Equal(t, "notes", header[len(header)-1])
}

func TestRow(t *testing.T) {
	t.Parallel()

	row := Row(1, sampleScores()[0])
	require.Len(t, row, len(Header()))

	assert.Equal(t, "1", row[0])
	assert.Equal(t, "ABC Electric", row[1])
	assert.Equal(t, "(555) 123-4567", row[2])
	assert.Equal(t, "abcelectric.com", row[3])
	assert.Equal(t, "CA", row[4])
	assert.Equal(t, "Generac; Kohler; Tesla", row[5])
	assert.Equal(t, "40", row[6], "multi_oem points in dimension order")
	assert.Equal(t, "140", row[len(row)-3])
	assert.Equal(t, "HOT", row[len(row)-2])
	assert.Contains(t, row[len(row)-1], "3+ OEM brands")
}

func TestRow_NotesSkipZeroDimensions(t *testing.T) {
	t.Parallel()

	sc := sampleScores()[1]
	sc.Breakdown[model.DimOMBonus] = "no O&M indicators"

	row := Row(2, sc)
	notes := row[len(row)-1]
	assert.Contains(t, notes, "1 OEM brand")
	assert.NotContains(t, notes, "no O&M indicators", "zero-point dimensions stay out of notes")
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleScores()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two scores")

	assert.Equal(t, Header(), rows[0])
	assert.Equal(t, "ABC Electric", rows[1][1])
	assert.Equal(t, "Solo Solar", rows[2][1])
	assert.Equal(t, "2", rows[2][0], "rank follows input order")
}

func TestWriteCSV_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestWriteCSVFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, WriteCSVFile(path, sampleScores()))
	assert.FileExists(t, path)
}

func TestWriteXLSXFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, WriteXLSXFile(path, sampleScores()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Leads", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "rank", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "ABC Electric", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "140", sheet.Rows[1].Cells[len(Header())-3].String())
}
