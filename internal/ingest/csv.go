package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/coperniq/prospector/internal/model"
)

// ReadCSV parses the legacy CSV batch format (header row required).
// Unknown columns are ignored and missing columns leave fields empty, so
// older exports stay importable. Numeric parse failures degrade to zero
// rather than failing the batch.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.DealerRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []model.DealerRecord{}, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv header")
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := []model.DealerRecord{}
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "ingest: context cancelled")
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "ingest: read csv row")
		}

		rec := model.NewDealerRecord(field(row, "name"), field(row, "phone"), field(row, "domain"))
		rec.Website = field(row, "website")
		rec.Street = field(row, "street")
		rec.City = field(row, "city")
		rec.State = field(row, "state")
		rec.Zip = field(row, "zip")
		rec.AddressFull = field(row, "address_full")
		rec.Distance = field(row, "distance")
		rec.ScrapedFromZip = field(row, "scraped_from_zip")

		if tier := field(row, "tier"); tier != "" {
			rec.Tier = tier
		}
		if certs := field(row, "certifications"); certs != "" {
			for _, c := range strings.Split(certs, ";") {
				if c = strings.TrimSpace(c); c != "" {
					rec.Certifications = append(rec.Certifications, c)
				}
			}
		}

		rec.Rating, _ = strconv.ParseFloat(field(row, "rating"), 64)
		rec.ReviewCount, _ = strconv.Atoi(field(row, "review_count"))
		rec.DistanceMiles, _ = strconv.ParseFloat(field(row, "distance_miles"), 64)

		rec.Capabilities = model.Capabilities{
			Generator:   parseBool(field(row, "has_generator")),
			Solar:       parseBool(field(row, "has_solar")),
			Battery:     parseBool(field(row, "has_battery")),
			Electrical:  parseBool(field(row, "has_electrical")),
			HVAC:        parseBool(field(row, "has_hvac")),
			Roofing:     parseBool(field(row, "has_roofing")),
			Plumbing:    parseBool(field(row, "has_plumbing")),
			Commercial:  parseBool(field(row, "is_commercial")),
			Residential: parseBool(field(row, "is_residential")),
		}

		records = append(records, rec)
	}
	return records, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
