package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to flag names to form their environment variable
const EnvPrefix = "ROTA_"

// EnvName returns the environment variable read for a flag, e.g. database-url -> ROTA_DATABASE_URL
func EnvName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// ApplyEnv sets every flag not given on the command line from its environment variable, if present
func ApplyEnv(flags *pflag.FlagSet) error {
	var errs []string
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			return
		}
		value, ok := os.LookupEnv(EnvName(flag.Name))
		if !ok {
			return
		}
		if err := flags.Set(flag.Name, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", EnvName(flag.Name), err))
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}
