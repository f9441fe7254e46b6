package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List imported dealer batches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		batches, err := st.ListBatches(ctx)
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			fmt.Println("No batches imported.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "OEM\tRECORDS\tSOURCE\tIMPORTED\tBATCH ID")
		for _, b := range batches {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
				b.OEM, b.RecordCount, b.SourceFile,
				b.CreatedAt.Format("2006-01-02 15:04"), b.ID)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(batchesCmd)
}
