package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coperniq/prospector/internal/model"
	"github.com/coperniq/prospector/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank cross-referenced contractors",
	Long: `Resolves contractors across OEM networks and scores each group on
multi-OEM presence, incentive-state priority, commercial capability,
geographic territory, and deadline urgency, plus O&M and multi-trade
bonuses. Results are ranked highest first.

Examples:
  # Score multi-OEM contractors, print a table
  prospector score

  # Include single-OEM dealers too
  prospector score --min-oems 1

  # Top 50 to CSV
  prospector score --limit 50 --format csv --output leads.csv

  # XLSX workbook for the sales team
  prospector score --format xlsx --output leads.xlsx

  # Rescore as of a fixed date (deadline urgency is date-sensitive)
  prospector score --as-of 2025-10-01`,
	RunE: runScoreCmd,
}

func init() {
	f := scoreCmd.Flags()
	f.Int("min-oems", 0, "minimum OEM networks per group (0=use config)")
	f.Float64("name-threshold", 0, "fuzzy name match threshold (0=use config)")
	f.StringSlice("oem", nil, "restrict to the named OEM networks (repeatable)")
	f.String("as-of", "", "reference date for deadline urgency (YYYY-MM-DD, default today)")
	f.Int("limit", 0, "maximum number of results (0=all)")
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")
	f.Bool("save", false, "save the score snapshot to the store")
	rootCmd.AddCommand(scoreCmd)
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	limit, _ := cmd.Flags().GetInt("limit")
	asOfStr, _ := cmd.Flags().GetString("as-of")
	save, _ := cmd.Flags().GetBool("save")

	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("score: --format must be table, csv, or xlsx (got %q)", format)
	}
	if format == "xlsx" && outputPath == "" {
		return eris.New("score: --format xlsx requires --output")
	}
	if err := scorer.ValidateConfig(cfg.Scorer); err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	groups, err := resolveGroups(cmd, st)
	if err != nil {
		return err
	}

	inputs := make([]model.ScoreInput, 0, len(groups))
	for _, g := range groups {
		inputs = append(inputs, model.ScoreInputFromGroup(g))
	}

	ls := scorer.NewLeadScorer(cfg.Scorer)
	if asOfStr != "" {
		asOf, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			return eris.Wrapf(err, "score: parse --as-of %q", asOfStr)
		}
		ls.SetReferenceDate(asOf)
	}

	scores := ls.Score(inputs)
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}

	if save {
		if err := st.SaveScores(ctx, scores); err != nil {
			return err
		}
		zap.L().Info("score snapshot saved", zap.Int("count", len(scores)))
	}

	if err := outputScores(scores, format, outputPath); err != nil {
		return err
	}
	if format == "table" && outputPath == "" {
		printScoreSummary(scores)
	}
	if outputPath != "" {
		fmt.Printf("Wrote %d scored leads to %s\n", len(scores), outputPath)
	}
	return nil
}
