package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coperniq/prospector/internal/ingest"
	"github.com/coperniq/prospector/internal/model"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import OEM dealer roster files into the store",
	Long: `Parses dealer-locator output files (JSON or CSV) and saves each as a
batch in the store. Each --input takes the form OEM=PATH, so rosters
from several OEM networks can be imported in one run.

Examples:
  # Import one Generac roster
  prospector import --input Generac=generac_dealers.json

  # Import three networks at once
  prospector import \
    --input Generac=generac.json \
    --input Kohler=kohler.csv \
    --input Tesla=tesla_installers.json`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringSlice("input", nil, "OEM=PATH roster file to import (repeatable, required)")
	_ = importCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(importCmd)
}

type parsedBatch struct {
	oem     string
	path    string
	records []model.DealerRecord
}

// parseInputSpec splits an OEM=PATH argument.
func parseInputSpec(spec string) (oem, path string, err error) {
	oem, path, ok := strings.Cut(spec, "=")
	if !ok || oem == "" || path == "" {
		return "", "", eris.Errorf("import: --input must be OEM=PATH (got %q)", spec)
	}
	return oem, path, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputs, _ := cmd.Flags().GetStringSlice("input")

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	log := zap.L().With(zap.String("command", "import"))

	// Parse files concurrently; batch writes go through the store
	// serially below to keep SQLite happy.
	g, gctx := errgroup.WithContext(ctx)
	results := make([]parsedBatch, len(inputs))
	for i, spec := range inputs {
		oem, path, err := parseInputSpec(spec)
		if err != nil {
			return err
		}
		g.Go(func() error {
			records, err := ingest.ReadFile(gctx, path, oem)
			if err != nil {
				return eris.Wrapf(err, "import: read %s", path)
			}
			results[i] = parsedBatch{oem: oem, path: path, records: records}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, pb := range results {
		batch, err := st.SaveBatch(ctx, pb.oem, pb.path, pb.records)
		if err != nil {
			return eris.Wrapf(err, "import: save batch for %s", pb.oem)
		}
		total += batch.RecordCount
		log.Info("batch imported",
			zap.String("oem", batch.OEM),
			zap.String("file", batch.SourceFile),
			zap.Int("records", batch.RecordCount),
			zap.String("batch_id", batch.ID),
		)
	}

	fmt.Printf("Imported %d records across %d batches\n", total, len(results))
	return nil
}
