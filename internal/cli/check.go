package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"toggl-reports/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a month of entries without writing artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		period, err := periodFromFlags(cmd, cfg.Location())
		if err != nil {
			return err
		}

		findings, entries, err := app.NewCheck(log, cfg).CheckOnce(cmd.Context(), period)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "%s: %d entries\n", Primary(period.String()), entries)
		printFindings(w, findings)
		if findings.Empty() {
			_, _ = fmt.Fprintln(w, Info("no findings"))
		}
		return nil
	},
}

func init() {
	addPeriodFlags(checkCmd)
}
