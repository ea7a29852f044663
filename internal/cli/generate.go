package cli

import (
	"github.com/spf13/cobra"

	"toggl-reports/internal/app"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the monthly report artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		period, err := periodFromFlags(cmd, cfg.Location())
		if err != nil {
			return err
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			cfg.Report.OutputDir = out
		}
		if skip, _ := cmd.Flags().GetBool("skip-invoice"); skip {
			cfg.Invoice.SpreadsheetID = ""
		}

		application, err := app.New(cmd.Context(), log, cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		res, err := application.GenerateOnce(cmd.Context(), period)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		printSummary(w, res.Summary)
		printFindings(w, res.Findings)
		printArtifacts(w, res.Artifacts)
		return nil
	},
}

func init() {
	addPeriodFlags(generateCmd)
	generateCmd.Flags().String("out", "", "output directory (overrides config)")
	generateCmd.Flags().Bool("skip-invoice", false, "skip the invoice spreadsheet export")
}
