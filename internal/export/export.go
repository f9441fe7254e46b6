// Package export writes ranked lead lists to CSV and XLSX files for
// handoff to sales tooling. Row order is preserved from the scorer.
package export

import (
	"strconv"
	"strings"

	"github.com/coperniq/prospector/internal/model"
)

// dimensions is the column order for per-dimension points. Bonus
// dimensions come last so the running subtotal reads left to right.
var dimensions = []string{
	model.DimMultiOEM,
	model.DimIncentive,
	model.DimCommercial,
	model.DimGeographic,
	model.DimUrgency,
	model.DimOMBonus,
	model.DimTradeBonus,
}

// Header returns the column names for an exported lead list.
func Header() []string {
	cols := []string{"rank", "contractor", "phone", "domain", "state", "oem_sources"}
	cols = append(cols, dimensions...)
	cols = append(cols, "total_score", "tier", "notes")
	return cols
}

// Row flattens a single LeadScore into the export column order.
func Row(rank int, sc model.LeadScore) []string {
	cells := []string{
		strconv.Itoa(rank),
		sc.ContractorName,
		sc.ContractorPhone,
		sc.ContractorDomain,
		sc.ContractorState,
		strings.Join(sc.OEMSources, "; "),
	}
	for _, dim := range dimensions {
		cells = append(cells, strconv.Itoa(sc.Component(dim)))
	}
	cells = append(cells, strconv.Itoa(sc.TotalScore), string(sc.Tier), notes(sc))
	return cells
}

// notes joins the per-dimension explanations into one field, skipping
// dimensions that contributed nothing.
func notes(sc model.LeadScore) string {
	parts := make([]string, 0, len(dimensions))
	for _, dim := range dimensions {
		expl, ok := sc.Breakdown[dim]
		if !ok || expl == "" {
			continue
		}
		if sc.Component(dim) == 0 {
			continue
		}
		parts = append(parts, expl)
	}
	return strings.Join(parts, " | ")
}
