package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/procure-cli/internal/metrics"
	"github.com/sells-group/procure-cli/internal/sheet"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk import records from spreadsheets",
}

var importHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Import price history from an XLSX or CSV file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("import"); err != nil {
			return err
		}

		entries, err := sheet.ReadFile(importFile)
		if err != nil {
			return eris.Wrap(err, "import history")
		}
		if len(entries) == 0 {
			zap.L().Warn("no rows to import", zap.String("file", importFile))
			return nil
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		n, err := st.InsertPriceHistory(ctx, entries)
		if err != nil {
			return eris.Wrap(err, "import history")
		}
		metrics.EntriesCreated.WithLabelValues("price_history").Add(float64(n))

		zap.L().Info("import complete",
			zap.Int64("rows", n),
			zap.String("file", importFile),
		)
		return nil
	},
}

func init() {
	importHistoryCmd.Flags().StringVar(&importFile, "file", "", "path to XLSX or CSV file (required)")
	_ = importHistoryCmd.MarkFlagRequired("file")
	importCmd.AddCommand(importHistoryCmd)
	rootCmd.AddCommand(importCmd)
}
