package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file and list each person's constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Configuration is valid\n\n")
			fmt.Fprintf(out, "Shift length: %d day(s)\n", cfg.ShiftLength)

			fmt.Fprintf(out, "\nGlobal constraints:\n")
			if len(cfg.Constraints) == 0 {
				fmt.Fprintf(out, "  (none)\n")
			}
			for _, c := range cfg.Constraints {
				fmt.Fprintf(out, "  - %s\n", c)
			}
			for _, b := range cfg.Blackouts {
				fmt.Fprintf(out, "  - blackout %s for %d day(s)\n", b.RRule, b.Days)
			}

			fmt.Fprintf(out, "\nFound %d humans:\n", len(cfg.Humans))
			for _, name := range cfg.Humans.Names() {
				human := cfg.Humans[name]
				fmt.Fprintf(out, "\n%s\n", name)
				if human.PriorWorkload > 0 {
					fmt.Fprintf(out, "  prior workload: %g hours\n", human.PriorWorkload)
				}
				for _, c := range human.Constraints {
					fmt.Fprintf(out, "  - %s\n", c)
				}
				for _, r := range human.RecurringUnavailability {
					fmt.Fprintf(out, "  - unavailable %s for %d day(s)\n", r.RRule, r.Days)
				}
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
