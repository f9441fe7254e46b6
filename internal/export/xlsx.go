package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/coperniq/prospector/internal/model"
)

const sheetName = "Leads"

// WriteXLSXFile writes the ranked lead list to an XLSX workbook at path.
func WriteXLSXFile(path string, scores []model.LeadScore) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	headerStyle := xlsx.NewStyle()
	headerStyle.Font.Bold = true

	header := sheet.AddRow()
	for _, col := range Header() {
		cell := header.AddCell()
		cell.Value = col
		cell.SetStyle(headerStyle)
	}

	for i, sc := range scores {
		row := sheet.AddRow()
		for _, val := range Row(i+1, sc) {
			row.AddCell().Value = val
		}
	}

	return eris.Wrap(f.Save(path), "export: save xlsx file")
}
