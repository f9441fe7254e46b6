// Package ingest parses scraper output files (JSON and CSV dealer
// batches) into DealerRecords. It performs no network I/O; upstream
// scrapers write files, this package reads them.
package ingest

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/coperniq/prospector/internal/model"
)

// ReadFile parses a scraper output file into dealer records, dispatching
// on extension (.json or .csv). The OEM label overrides whatever the file
// carries so provenance always reflects the import call.
func ReadFile(ctx context.Context, path, oemName string) ([]model.DealerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close()

	var records []model.DealerRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		records, err = ReadJSON(ctx, f)
	case ".csv":
		records, err = ReadCSV(ctx, f)
	default:
		return nil, eris.Errorf("ingest: unsupported file type %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	for i := range records {
		records[i].OEMSource = oemName
		if records[i].Certifications == nil {
			records[i].Certifications = []string{}
		}
	}
	return records, nil
}

// ReadJSON decodes a JSON array of dealer objects, streaming element by
// element so large batches do not require a second copy in memory.
func ReadJSON(ctx context.Context, r io.Reader) ([]model.DealerRecord, error) {
	decoder := json.NewDecoder(r)

	tok, err := decoder.Token()
	if err != nil {
		if err == io.EOF {
			return []model.DealerRecord{}, nil
		}
		return nil, eris.Wrap(err, "ingest: read opening token")
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '[' {
		return nil, eris.Errorf("ingest: expected JSON array, got %v", tok)
	}

	records := []model.DealerRecord{}
	for decoder.More() {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "ingest: context cancelled")
		}
		var rec model.DealerRecord
		if err := decoder.Decode(&rec); err != nil {
			return nil, eris.Wrap(err, "ingest: decode dealer")
		}
		records = append(records, rec)
	}
	return records, nil
}
