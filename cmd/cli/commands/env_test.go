package commands

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvName(t *testing.T) {
	assert.Equal(t, "ROTA_DATABASE_URL", EnvName("database-url"))
	assert.Equal(t, "ROTA_CONFIG", EnvName("config"))
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database-url", "", "")
	flags.String("env", "local", "")
	flags.Bool("debug", false, "")
	return flags
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ROTA_DATABASE_URL", "postgres://localhost/rota")
	t.Setenv("ROTA_DEBUG", "true")

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))
	require.NoError(t, ApplyEnv(flags))

	url, _ := flags.GetString("database-url")
	assert.Equal(t, "postgres://localhost/rota", url)
	debug, _ := flags.GetBool("debug")
	assert.True(t, debug)
	env, _ := flags.GetString("env")
	assert.Equal(t, "local", env, "unset variables keep the default")
}

func TestApplyEnv_CommandLineWins(t *testing.T) {
	t.Setenv("ROTA_ENV", "prod")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--env", "test"}))
	require.NoError(t, ApplyEnv(flags))

	env, _ := flags.GetString("env")
	assert.Equal(t, "test", env)
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	t.Setenv("ROTA_DEBUG", "sometimes")

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))
	assert.ErrorContains(t, ApplyEnv(flags), "ROTA_DEBUG")
}
