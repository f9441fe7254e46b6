package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coperniq/prospector/internal/ingest"
	"github.com/coperniq/prospector/internal/model"
	"github.com/coperniq/prospector/internal/scorer"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run import, resolve, score, and export end to end",
	Long: `Imports the given roster files, cross-references contractors across
OEM networks, scores every resolved group, saves the snapshot, and
writes the ranked list to the output file.

Example:
  prospector pipeline \
    --input Generac=generac.json \
    --input Kohler=kohler.csv \
    --input Briggs=briggs.json \
    --output hot_leads.xlsx`,
	RunE: runPipeline,
}

func init() {
	f := pipelineCmd.Flags()
	f.StringSlice("input", nil, "OEM=PATH roster file to import (repeatable, required)")
	f.Int("min-oems", 0, "minimum OEM networks per group (0=use config)")
	f.Float64("name-threshold", 0, "fuzzy name match threshold (0=use config)")
	f.StringSlice("oem", nil, "restrict scoring to the named OEM networks (repeatable)")
	f.Int("limit", 0, "maximum number of results (0=all)")
	f.String("output", "ranked_leads.csv", "output file (.csv or .xlsx)")
	_ = pipelineCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	inputs, _ := cmd.Flags().GetStringSlice("input")
	limit, _ := cmd.Flags().GetInt("limit")
	outputPath, _ := cmd.Flags().GetString("output")

	format := "csv"
	if len(outputPath) > 5 && outputPath[len(outputPath)-5:] == ".xlsx" {
		format = "xlsx"
	}
	if err := scorer.ValidateConfig(cfg.Scorer); err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	log := zap.L().With(zap.String("command", "pipeline"))

	// Stage 1: import.
	g, gctx := errgroup.WithContext(ctx)
	batches := make([]parsedBatch, len(inputs))
	for i, spec := range inputs {
		oem, path, err := parseInputSpec(spec)
		if err != nil {
			return err
		}
		g.Go(func() error {
			records, err := ingest.ReadFile(gctx, path, oem)
			if err != nil {
				return eris.Wrapf(err, "pipeline: read %s", path)
			}
			batches[i] = parsedBatch{oem: oem, path: path, records: records}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	imported := 0
	for _, pb := range batches {
		if _, err := st.SaveBatch(ctx, pb.oem, pb.path, pb.records); err != nil {
			return eris.Wrapf(err, "pipeline: save batch for %s", pb.oem)
		}
		imported += len(pb.records)
	}
	log.Info("import stage complete",
		zap.Int("batches", len(batches)),
		zap.Int("records", imported),
	)

	// Stage 2: resolve.
	groups, err := resolveGroups(cmd, st)
	if err != nil {
		return err
	}
	log.Info("resolve stage complete", zap.Int("groups", len(groups)))

	// Stage 3: score and snapshot.
	scoreInputs := make([]model.ScoreInput, 0, len(groups))
	for _, grp := range groups {
		scoreInputs = append(scoreInputs, model.ScoreInputFromGroup(grp))
	}
	scores := scorer.NewLeadScorer(cfg.Scorer).Score(scoreInputs)
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	if err := st.SaveScores(ctx, scores); err != nil {
		return err
	}
	log.Info("score stage complete", zap.Int("scored", len(scores)))

	// Stage 4: export.
	if err := outputScores(scores, format, outputPath); err != nil {
		return err
	}

	fmt.Printf("Pipeline complete: %d records -> %d groups -> %s\n",
		imported, len(groups), outputPath)
	printScoreSummary(scores)
	return nil
}
