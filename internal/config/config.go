package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/oncall-rota/pkg/core/constraints"
	"github.com/jakechorley/oncall-rota/pkg/core/model"
)

// FileName is the config file searched for by Load
const FileName = "rota.yaml"

// Recurrence describes a recurring run of whole days, e.g. every other Friday
type Recurrence struct {
	RRule string `yaml:"rrule" validate:"required"`

	// Days is how many days each occurrence lasts
	Days int `yaml:"days" validate:"min=1"`

	// DTStart anchors the rule (YYYY-MM-DD). Defaults to RecurrenceEpoch.
	DTStart string `yaml:"dtstart,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Human is one person's entry in the config
type Human struct {
	Constraints ConstraintList `yaml:"constraints,omitempty"`

	// PriorWorkload is in hours
	PriorWorkload float64 `yaml:"priorWorkload,omitempty" validate:"gte=0"`

	RecurringUnavailability []Recurrence `yaml:"recurringUnavailability,omitempty" validate:"dive"`
}

// Config represents the application configuration
type Config struct {
	// ShiftLength is in days
	ShiftLength int            `yaml:"shiftLength" validate:"min=1"`
	Constraints ConstraintList `yaml:"constraints,omitempty"`
	Blackouts   []Recurrence   `yaml:"blackouts,omitempty" validate:"dive"`
	Humans      Humans         `yaml:"humans" validate:"dive,keys,required,endkeys"`
}

// RecurrenceEpoch anchors rules that set no DTSTART, so a rule lands on the same days whatever period is planned
var RecurrenceEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rota.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a config document
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// An omitted shift length means one day
	if cfg.ShiftLength == 0 {
		cfg.ShiftLength = 1
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, blackout := range cfg.Blackouts {
		if err := blackout.check(); err != nil {
			return fmt.Errorf("invalid rrule in blackouts[%d]: %w", i, err)
		}
	}

	for _, name := range cfg.Humans.Names() {
		human := cfg.Humans[name]
		for i, c := range human.Constraints {
			if u, ok := c.(constraints.Unavailable); ok && u.End.Before(u.Start) {
				return fmt.Errorf("humans.%s.constraints[%d]: unavailable end %s is before start %s",
					name, i, u.End.Format(time.DateOnly), u.Start.Format(time.DateOnly))
			}
		}
		for i, r := range human.RecurringUnavailability {
			if err := r.check(); err != nil {
				return fmt.Errorf("invalid rrule in humans.%s.recurringUnavailability[%d]: %w", name, i, err)
			}
		}
	}

	return nil
}

// Rota converts the config into the scheduler's input for the period [start, end).
// Recurring rules are expanded into date-range unavailability within the period.
func (c *Config) Rota(start, end time.Time) (*model.Rota, error) {
	global := append([]constraints.Constraint{}, c.Constraints...)
	for i, blackout := range c.Blackouts {
		expanded, err := blackout.Expand(start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to expand blackouts[%d]: %w", i, err)
		}
		global = append(global, expanded...)
	}

	rota := &model.Rota{
		ShiftLength: time.Duration(c.ShiftLength) * model.Day,
		Constraints: global,
		People:      make(map[string]model.Person, len(c.Humans)),
	}

	for _, name := range c.Humans.Names() {
		human := c.Humans[name]
		personal := append([]constraints.Constraint{}, human.Constraints...)
		for i, r := range human.RecurringUnavailability {
			expanded, err := r.Expand(start, end)
			if err != nil {
				return nil, fmt.Errorf("failed to expand humans.%s.recurringUnavailability[%d]: %w", name, i, err)
			}
			personal = append(personal, expanded...)
		}

		rota.People[name] = model.Person{
			Constraints:   personal,
			PriorWorkload: time.Duration(human.PriorWorkload * float64(time.Hour)),
		}
	}

	return rota, nil
}

// options parses the rule and anchors it at DTStart, a DTSTART inside the rule, or RecurrenceEpoch
func (r Recurrence) options() (*rrule.ROption, bool, error) {
	opts, err := rrule.StrToROption(r.RRule)
	if err != nil {
		return nil, false, err
	}

	anchored := !opts.Dtstart.IsZero()
	if r.DTStart != "" {
		dtstart, err := constraints.ParseDate(r.DTStart)
		if err != nil {
			return nil, false, err
		}
		opts.Dtstart = dtstart
		anchored = true
	}
	if opts.Dtstart.IsZero() {
		opts.Dtstart = RecurrenceEpoch
	}

	return opts, anchored, nil
}

// check rejects rules whose occurrences are not whole days or would depend on an implicit anchor
func (r Recurrence) check() error {
	opts, anchored, err := r.options()
	if err != nil {
		return err
	}
	if opts.Freq > rrule.DAILY {
		return fmt.Errorf("%q repeats more often than daily", r.RRule)
	}
	if opts.Count > 0 && !anchored {
		return fmt.Errorf("%q has COUNT but no dtstart", r.RRule)
	}
	_, err = rrule.NewRRule(*opts)
	return err
}

// Expand returns an Unavailable constraint for every occurrence overlapping [start, end)
func (r Recurrence) Expand(start, end time.Time) ([]constraints.Constraint, error) {
	opts, _, err := r.options()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}
	rule, err := rrule.NewRRule(*opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}

	days := max(r.Days, 1)

	// Occurrences starting shortly before the period can still reach into it
	searchStart := start.AddDate(0, 0, -(days - 1))

	var result []constraints.Constraint
	for _, occurrence := range rule.Between(searchStart, end, true) {
		first := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(), 0, 0, 0, 0, time.UTC)
		result = append(result, constraints.NewUnavailable(first, first.AddDate(0, 0, days-1)))
	}

	return result, nil
}

// findConfigFile searches for rota.yaml in current directory and home directory
func findConfigFile() (string, error) {
	// Check current directory
	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, FileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
