package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mtgtools/buylistdb/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a buylist report from a card list file",
	Long: `Run parses a card list file, resolves the referenced sets against the
catalog source (cache-first, one request at a time), attaches buylist
price data, and prints an ordered report: buylist-eligible cards first,
other matches next, unmatched cards last.

Card list lines may use any of these forms:
  Lightning Bolt | LEA
  2x Sol Ring (lea) 1
  1 The Rise of Sozin (TLA) 117 *F*
  Counterspell`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listPath, _ := cmd.Flags().GetString("list")
		outputPath, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		if err := application.Run(listPath, outputPath, format); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		return nil
	},
}

func init() {
	runCmd.Flags().String("list", "", "path to the card list file")
	runCmd.Flags().String("output", "", "path to save the report to (optional)")
	runCmd.Flags().String("format", "json", "report output format: 'json' or 'yaml'")
	runCmd.Flags().Bool("all-printings", false, "fetch the full catalog when the list names no sets")
	runCmd.MarkFlagRequired("list")
	viper.BindPFlag("all_printings", runCmd.Flags().Lookup("all-printings"))
	rootCmd.AddCommand(runCmd)
}
