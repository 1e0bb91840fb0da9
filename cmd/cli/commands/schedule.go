package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/pkg/core/constraints"
	"github.com/jakechorley/oncall-rota/pkg/core/services"
	"github.com/jakechorley/oncall-rota/pkg/output"
)

// DefaultPeriodDays is how far ahead schedule plans when --end is not given
const DefaultPeriodDays = 28

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate an on-call schedule for a period",
		Long: `Generate an on-call schedule for a period and print it.

The summary is written to stderr and the schedule to stdout, so the schedule can be
piped or redirected. Exits with status 1 if any slot is left without cover.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startFlag, _ := cmd.Flags().GetString("start")
			endFlag, _ := cmd.Flags().GetString("end")
			formatFlag, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")

			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			start, end, err := resolvePeriod(app.now(), startFlag, endFlag)
			if err != nil {
				return err
			}

			app.Logger.Info("schedule command",
				zap.Time("start", start),
				zap.Time("end", end),
				zap.String("format", string(format)),
				zap.Bool("save", save))

			cfg, err := app.Config()
			if err != nil {
				return err
			}

			rota, err := cfg.Rota(start, end)
			if err != nil {
				return err
			}

			store, err := app.OptionalDatabase()
			if err != nil {
				return err
			}

			var scheduleStore services.ScheduleStore
			if store != nil {
				scheduleStore = store
			}

			result, err := services.GenerateSchedule(app.Ctx, scheduleStore, rota, app.Logger, services.GenerateScheduleInput{
				Start:  start,
				End:    end,
				Save:   save,
				Source: "cli",
			})
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			fmt.Fprintf(stderr, "Schedule from %s to %s\n\n", start.Format(time.DateOnly), end.Format(time.DateOnly))
			fmt.Fprintln(stderr, result.Summary)
			if result.RunID != "" {
				fmt.Fprintf(stderr, "Saved as run %s\n\n", result.RunID)
			}

			if err := output.Write(cmd.OutOrStdout(), format, result.Schedule); err != nil {
				return err
			}

			if result.Unassigned > 0 {
				fmt.Fprintf(stderr, "\nWARNING: %d slot(s) could not be assigned\n", result.Unassigned)
			}

			return result.Err()
		},
	}

	cmd.Flags().String("start", "", "First day of the period (YYYY-MM-DD, default today)")
	cmd.Flags().String("end", "", fmt.Sprintf("Day after the period (YYYY-MM-DD, default start + %d days)", DefaultPeriodDays))
	cmd.Flags().StringP("format", "f", string(output.FormatHuman), fmt.Sprintf("Output format (%s)", formatNames()))
	cmd.Flags().Bool("save", false, "Save the run to the database")

	return cmd
}

// resolvePeriod parses the period flags, defaulting to today and the following four weeks
func resolvePeriod(now time.Time, startFlag, endFlag string) (time.Time, time.Time, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if startFlag != "" {
		var err error
		if start, err = constraints.ParseDate(startFlag); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
		}
	}

	end := start.AddDate(0, 0, DefaultPeriodDays)
	if endFlag != "" {
		var err error
		if end, err = constraints.ParseDate(endFlag); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end %s is before --start %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	return start, end, nil
}

func formatNames() string {
	names := ""
	for i, f := range output.Formats {
		if i > 0 {
			names += "|"
		}
		names += string(f)
	}
	return names
}
