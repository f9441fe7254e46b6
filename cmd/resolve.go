package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coperniq/prospector/internal/model"
	"github.com/coperniq/prospector/internal/resolver"
	"github.com/coperniq/prospector/internal/store"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Cross-reference dealers across OEM networks",
	Long: `Loads imported rosters and identifies contractors that appear in more
than one OEM network, matching on normalized phone numbers and website
domains. Prints the resolved groups ranked by multi-OEM score.`,
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.Int("min-oems", 0, "minimum OEM networks per group (0=use config)")
	f.Float64("name-threshold", 0, "fuzzy name match threshold (0=use config)")
	f.StringSlice("oem", nil, "restrict to the named OEM networks (repeatable)")
	rootCmd.AddCommand(resolveCmd)
}

// resolveGroups loads records from the store and runs the resolver with
// flag overrides applied on top of the configured defaults.
func resolveGroups(cmd *cobra.Command, st store.Store) ([]model.ResolvedContractor, error) {
	ctx := cmd.Context()

	minOEMs, _ := cmd.Flags().GetInt("min-oems")
	threshold, _ := cmd.Flags().GetFloat64("name-threshold")
	oems, _ := cmd.Flags().GetStringSlice("oem")

	opts := resolver.Options{
		MinOEMCount:   cfg.Resolver.MinOEMCount,
		NameThreshold: cfg.Resolver.NameThreshold,
	}
	if minOEMs > 0 {
		opts.MinOEMCount = minOEMs
	}
	if threshold > 0 {
		opts.NameThreshold = threshold
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	byOEM, err := st.LoadRecords(ctx, oems...)
	if err != nil {
		return nil, err
	}

	r := resolver.New()
	for oem, records := range byOEM {
		r.AddRecords(records, oem)
	}

	groups, err := r.Resolve(opts)
	if err != nil {
		return nil, err
	}

	zap.L().Info("resolution complete",
		zap.Int("oems", len(byOEM)),
		zap.Int("groups", len(groups)),
	)
	return groups, nil
}

func runResolve(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	groups, err := resolveGroups(cmd, st)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No cross-referenced contractors found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTRACTOR\tOEMS\tCONF\tSCORE\tSIGNALS")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			g.Primary.Name,
			strings.Join(g.OEMSources, ","),
			g.Confidence,
			g.MultiOEMScore,
			strings.Join(g.Signals, "+"),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d resolved groups\n", len(groups))
	return nil
}
