package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/procure-cli/internal/ask"
)

var (
	askProfile string
	askDryRun  bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a procurement question from the database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		question := strings.Join(args, " ")

		// A dry run only reads the store.
		mode := "ask"
		if askDryRun {
			mode = "migrate"
		}
		if err := cfg.Validate(mode); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		svc, err := initAsk(ctx, st, !askDryRun)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if askDryRun {
			prep, err := svc.Prepare(ctx, askProfile, question)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "keywords: %s\n\n%s\n", strings.Join(prep.Keywords, ", "), prep.Prompt)
			return nil
		}

		ans, err := svc.Ask(ctx, askProfile, question)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ans.Text)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askProfile, "profile", ask.DefaultProfile, "ask profile (general, suppliers, insights)")
	askCmd.Flags().BoolVar(&askDryRun, "dry-run", false, "print the assembled prompt without calling the model")
	rootCmd.AddCommand(askCmd)
}
