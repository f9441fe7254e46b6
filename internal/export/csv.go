package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/coperniq/prospector/internal/model"
)

// WriteCSV writes the ranked lead list to w.
func WriteCSV(w io.Writer, scores []model.LeadScore) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for i, sc := range scores {
		if err := cw.Write(Row(i+1, sc)); err != nil {
			return eris.Wrapf(err, "export: write csv row %d", i+1)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteCSVFile writes the ranked lead list to a file at path.
func WriteCSVFile(path string, scores []model.LeadScore) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	if err := WriteCSV(f, scores); err != nil {
		f.Close()
		return err
	}
	return eris.Wrap(f.Close(), "export: close csv file")
}
