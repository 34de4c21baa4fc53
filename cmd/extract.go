package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/procure-cli/internal/extract"
	"github.com/sells-group/procure-cli/internal/ingest"
)

var (
	extractFile   string
	extractMode   string
	extractDryRun bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a supplier PDF and store it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		mode, err := ingest.ParseMode(extractMode)
		if err != nil {
			return err
		}
		if err := cfg.Validate("extract"); err != nil {
			return err
		}

		data, err := os.ReadFile(extractFile)
		if err != nil {
			return eris.Wrapf(err, "read %s", extractFile)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		svc, err := initIngest(ctx, st)
		if err != nil {
			return err
		}

		res, err := svc.Ingest(ctx, extract.Document{
			Name:     filepath.Base(extractFile),
			Data:     data,
			MIMEType: "application/pdf",
		}, mode, extractDryRun)
		if err != nil {
			return err
		}

		zap.L().Info("extract complete",
			zap.String("file", extractFile),
			zap.String("document_type", string(res.Document.DocumentType)),
			zap.Bool("dry_run", res.DryRun),
		)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractFile, "file", "", "path to PDF file (required)")
	extractCmd.Flags().StringVar(&extractMode, "mode", string(ingest.ModeFormal), "storage mode: formal or history")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "print the extracted record without storing it")
	_ = extractCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(extractCmd)
}
