package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"toggl-reports/internal/config"
	"toggl-reports/internal/domain"
)

// nowFn is swapped in tests to pin period resolution.
var nowFn = time.Now

var rootCmd = &cobra.Command{
	Use:   "toggl-reports",
	Short: "Monthly invoicing reports from Toggl time entries",
	Long: `toggl-reports fetches one month of Toggl time entries, validates them
(missing descriptions, missing projects, entries over the daily limit,
overlapping intervals), and writes the invoicing artifacts: a summary PDF,
a detailed PDF and CSV, and optionally the invoice spreadsheet exported
from Google Drive.

Without --month/--year the previous calendar month is reported.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config.toml (default: os config dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command under the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup builds the logger and loads configuration from persistent flags.
func setup(cmd *cobra.Command) (*slog.Logger, config.Config, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	return logger, cfg, err
}

// periodFromFlags reads --month/--year off cmd and resolves the period.
func periodFromFlags(cmd *cobra.Command, loc *time.Location) (domain.Period, error) {
	month, _ := cmd.Flags().GetInt("month")
	year, _ := cmd.Flags().GetInt("year")
	return parsePeriodFlags(month, year,
		cmd.Flags().Changed("month"), cmd.Flags().Changed("year"),
		nowFn(), loc)
}

// parsePeriodFlags resolves --month/--year into a reporting period.
// With neither flag the month before now is reported; both must come
// together so a bare --month never silently means the current year.
func parsePeriodFlags(month, year int, monthChanged, yearChanged bool, now time.Time, loc *time.Location) (domain.Period, error) {
	if !monthChanged && !yearChanged {
		return domain.PreviousMonth(now, loc), nil
	}
	if monthChanged != yearChanged {
		return domain.Period{}, errors.New("--month and --year must be given together")
	}
	return domain.NewPeriod(year, month, loc)
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().Int("month", 0, "report month (1-12, requires --year)")
	cmd.Flags().Int("year", 0, "report year (requires --month)")
}
