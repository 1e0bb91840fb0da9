package commands

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/pkg/core/constraints"
	"github.com/jakechorley/oncall-rota/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// WorkloadCmd creates the workload command
func WorkloadCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workload",
		Short: "Show the on-call time each person has worked in saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			beforeFlag, _ := cmd.Flags().GetString("before")
			noColor, _ := cmd.Flags().GetBool("no-color")

			before := app.now()
			if beforeFlag != "" {
				var err error
				if before, err = constraints.ParseDate(beforeFlag); err != nil {
					return fmt.Errorf("invalid --before: %w", err)
				}
			}

			database, err := app.Database()
			if err != nil {
				return err
			}

			workload, err := services.HistoricWorkload(app.Ctx, database, app.Logger, before)
			if err != nil {
				return err
			}

			app.Logger.Info("Workload fetched successfully", zap.Int("people", len(workload)))

			out := cmd.OutOrStdout()
			if len(workload) == 0 {
				fmt.Fprintln(out, "No saved assignments found.")
				return nil
			}

			green, yellow, red := colorGreen, colorYellow, colorRed
			reset := colorReset
			if noColor {
				green, yellow, red, reset = "", "", "", ""
			}

			avg := averageHours(workload)
			fmt.Fprintf(out, "\nWorkload before %s (avg %.1f hours):\n\n", before.Format(time.DateOnly), avg)
			for _, human := range sortedByWorkload(workload) {
				hours := workload[human].Hours()
				color := workloadColor(hours, avg, green, yellow, red)
				fmt.Fprintf(out, "  %-30s %s%8.1f hours%s\n", human, color, hours, reset)
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().String("before", "", "Only count assignments ending before this date (YYYY-MM-DD, default now)")
	cmd.Flags().Bool("no-color", false, "Disable coloured output")

	return cmd
}

// workloadColor picks green for at or below average, yellow up to a quarter above, red beyond
func workloadColor(hours, avg float64, green, yellow, red string) string {
	switch {
	case hours <= avg:
		return green
	case hours <= avg*1.25:
		return yellow
	default:
		return red
	}
}

func averageHours(workload map[string]time.Duration) float64 {
	if len(workload) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range workload {
		total += d
	}
	return total.Hours() / float64(len(workload))
}

// sortedByWorkload orders people by workload, largest first, then by name
func sortedByWorkload(workload map[string]time.Duration) []string {
	return slices.SortedFunc(maps.Keys(workload), func(a, b string) int {
		if c := cmp.Compare(workload[b], workload[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
