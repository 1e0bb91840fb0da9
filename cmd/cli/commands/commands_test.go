package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/pkg/core/services"
)

const testConfig = `
shiftLength: 1
constraints:
  - !DayOfWeek [Mon, Tue, Wed, Thu, Fri]
  - !TimeOfDay {start: "09:00", end: "17:00"}
humans:
  alice:
    - !DayOfWeek [Mon, Wed, Fri]
  bob:
    priorWorkload: 8
`

const gapConfig = `
constraints:
  - !DayOfWeek [Mon, Tue, Wed, Thu, Fri]
  - !TimeOfDay {start: "09:00", end: "17:00"}
humans:
  alice:
    - !DayOfWeek [Mon, Wed, Fri]
`

func newTestApp(t *testing.T, config string) *AppContext {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rota.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	return &AppContext{
		ConfigPath: path,
		Logger:     zap.NewNop(),
		Ctx:        context.Background(),
		Now: func() time.Time {
			return time.Date(2023, time.January, 9, 14, 30, 0, 0, time.UTC)
		},
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2023, time.January, 9, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		start, end    string
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{"defaults to today and four weeks", "", "",
			time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.February, 6, 0, 0, 0, 0, time.UTC)},
		{"end defaults from start", "2023-03-01", "",
			time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.March, 29, 0, 0, 0, 0, time.UTC)},
		{"explicit period", "2023-01-01", "2024-01-01",
			time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"empty period", "2023-01-01", "2023-01-01",
			time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := resolvePeriod(now, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, start)
			assert.Equal(t, tt.expectedEnd, end)
		})
	}
}

func TestResolvePeriod_Errors(t *testing.T) {
	now := time.Now()

	_, _, err := resolvePeriod(now, "09/01/2023", "")
	assert.ErrorContains(t, err, "invalid --start")

	_, _, err = resolvePeriod(now, "", "tomorrow")
	assert.ErrorContains(t, err, "invalid --end")

	_, _, err = resolvePeriod(now, "2023-02-01", "2023-01-01")
	assert.ErrorContains(t, err, "is before --start")
}

func TestScheduleCmd_CSV(t *testing.T) {
	app := newTestApp(t, testConfig)

	stdout, stderr, err := run(t, ScheduleCmd(app), "--start", "2023-01-09", "--end", "2023-01-14", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6, "header plus one row per weekday")
	assert.Equal(t, "start,end,human", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2023-01-09T09:00:00,2023-01-09T17:00:00,"))
	assert.NotContains(t, stdout, "UNASSIGNED")

	assert.Contains(t, stderr, "Schedule from 2023-01-09 to 2023-01-14")
	assert.Contains(t, stderr, "Workload:")
	assert.NotContains(t, stderr, "WARNING")
}

func TestScheduleCmd_FormatNone(t *testing.T) {
	app := newTestApp(t, testConfig)

	stdout, stderr, err := run(t, ScheduleCmd(app), "--start", "2023-01-09", "--end", "2023-01-14", "-f", "none")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Workload:")
}

func TestScheduleCmd_Gaps(t *testing.T) {
	app := newTestApp(t, gapConfig)

	stdout, stderr, err := run(t, ScheduleCmd(app), "--start", "2023-01-09", "--end", "2023-01-14", "--format", "csv")
	require.ErrorIs(t, err, services.ErrUnassignedSlots)

	// The schedule is still printed so the gaps can be seen
	assert.Equal(t, 2, strings.Count(stdout, "UNASSIGNED"))
	assert.Contains(t, stderr, "WARNING: 2 slot(s) could not be assigned")
}

func TestScheduleCmd_InvalidFormat(t *testing.T) {
	app := newTestApp(t, testConfig)

	_, _, err := run(t, ScheduleCmd(app), "--format", "xml")
	assert.Error(t, err)
}

func TestScheduleCmd_SaveWithoutDatabase(t *testing.T) {
	app := newTestApp(t, testConfig)

	_, _, err := run(t, ScheduleCmd(app), "--start", "2023-01-09", "--end", "2023-01-14", "--save")
	assert.ErrorIs(t, err, services.ErrNoStore)
}

func TestScheduleCmd_MissingConfig(t *testing.T) {
	app := newTestApp(t, testConfig)
	app.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, _, err := run(t, ScheduleCmd(app))
	assert.ErrorContains(t, err, "failed to load config")
}

func TestValidateCmd(t *testing.T) {
	app := newTestApp(t, testConfig)

	stdout, _, err := run(t, ValidateCmd(app))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Configuration is valid")
	assert.Contains(t, stdout, "Shift length: 1 day(s)")
	assert.Contains(t, stdout, "Found 2 humans")
	assert.Contains(t, stdout, "prior workload: 8 hours")
	assert.Less(t, strings.Index(stdout, "\nalice\n"), strings.Index(stdout, "\nbob\n"))
}

func TestValidateCmd_InvalidConfig(t *testing.T) {
	app := newTestApp(t, "shiftLength: -1\nhumans:\n  alice: []\n")

	_, _, err := run(t, ValidateCmd(app))
	assert.Error(t, err)
}

func TestWorkloadCmd_RequiresDatabase(t *testing.T) {
	app := newTestApp(t, testConfig)

	_, _, err := run(t, WorkloadCmd(app))
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestMigrateCmd_RequiresDatabase(t *testing.T) {
	app := newTestApp(t, testConfig)

	_, _, err := run(t, MigrateCmd(app))
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestOptionalDatabase_NoURL(t *testing.T) {
	app := newTestApp(t, testConfig)

	database, err := app.OptionalDatabase()
	require.NoError(t, err)
	assert.Nil(t, database)
}

func TestWorkloadColor(t *testing.T) {
	green := "GREEN"
	yellow := "YELLOW"
	red := "RED"

	tests := []struct {
		name     string
		hours    float64
		avg      float64
		expected string
	}{
		{"below average - green", 10, 20, green},
		{"at average - green", 20, 20, green},
		{"slightly above - yellow", 22, 20, yellow},
		{"quarter above - yellow", 25, 20, yellow},
		{"well above - red", 30, 20, red},
		{"nothing worked - green", 0, 0, green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, workloadColor(tt.hours, tt.avg, green, yellow, red))
		})
	}
}

func TestSortedByWorkload(t *testing.T) {
	workload := map[string]time.Duration{
		"carol": 8 * time.Hour,
		"alice": 16 * time.Hour,
		"bob":   8 * time.Hour,
		"dave":  0,
	}

	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, sortedByWorkload(workload))
	assert.InDelta(t, 8.0, averageHours(workload), 1e-9)
	assert.Zero(t, averageHours(nil))
}
