package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/coperniq/prospector/internal/export"
	"github.com/coperniq/prospector/internal/model"
)

// outputScores writes scored leads in the requested format. Table and
// CSV go to outputPath or stdout; XLSX always goes to outputPath.
func outputScores(scores []model.LeadScore, format, outputPath string) error {
	if format == "xlsx" {
		return export.WriteXLSXFile(outputPath, scores)
	}

	w := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "csv":
		return export.WriteCSV(w, scores)
	case "table":
		return writeScoreTable(w, scores)
	default:
		return eris.Errorf("score: unsupported format %q", format)
	}
}

func writeScoreTable(w *os.File, scores []model.LeadScore) error {
	header := fmt.Sprintf("%-4s %-40s %-14s %-5s %-24s %6s %-8s\n",
		"#", "Contractor", "Phone", "State", "OEM Networks", "Score", "Tier")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "score: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 106)); err != nil {
		return eris.Wrap(err, "score: write table separator")
	}

	for i, sc := range scores {
		name := sc.ContractorName
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		oems := strings.Join(sc.OEMSources, ",")
		if len(oems) > 24 {
			oems = oems[:21] + "..."
		}
		line := fmt.Sprintf("%-4d %-40s %-14s %-5s %-24s %6d %-8s\n",
			i+1, name, sc.ContractorPhone, sc.ContractorState, oems, sc.TotalScore, sc.Tier)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "score: write table row")
		}
	}
	return nil
}

func printScoreSummary(scores []model.LeadScore) {
	if len(scores) == 0 {
		fmt.Println("No results.")
		return
	}
	byTier := map[model.PriorityTier]int{}
	var sum int
	for _, sc := range scores {
		byTier[sc.Tier]++
		sum += sc.TotalScore
	}
	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Total scored:  %d\n", len(scores))
	for _, tier := range []model.PriorityTier{model.TierHot, model.TierHigh, model.TierMedium, model.TierLow} {
		if n := byTier[tier]; n > 0 {
			fmt.Printf("%-14s %d\n", string(tier)+":", n)
		}
	}
	fmt.Printf("Score range:   %d - %d\n", scores[len(scores)-1].TotalScore, scores[0].TotalScore)
	fmt.Printf("Average score: %.1f\n", float64(sum)/float64(len(scores)))
}
