package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
)

// Unassigned is printed in place of a person for slots nobody covers
const Unassigned = "UNASSIGNED"

// TimeLayout is used for machine readable timestamps
const TimeLayout = "2006-01-02T15:04:05"

// Format selects how a schedule is rendered
type Format string

const (
	FormatNone  Format = "none"
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
)

// Formats lists every supported format
var Formats = []Format{FormatNone, FormatHuman, FormatJSON, FormatCSV, FormatYAML}

// ParseFormat converts a flag value into a Format
func ParseFormat(value string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected one of %s)", value, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Slot is the serialized form of a schedule slot. Human is null for a slot nobody covers.
type Slot struct {
	Start string  `json:"start" yaml:"start"`
	End   string  `json:"end" yaml:"end"`
	Human *string `json:"human" yaml:"human"`
}

// NewSlot builds a Slot, treating an empty human as unassigned
func NewSlot(start, end time.Time, human string) Slot {
	slot := Slot{
		Start: start.Format(TimeLayout),
		End:   end.Format(TimeLayout),
	}
	if human != "" {
		slot.Human = &human
	}
	return slot
}

// HumanOrUnassigned returns the assignee, or Unassigned for a gap
func (s Slot) HumanOrUnassigned() string {
	if s.Human == nil {
		return Unassigned
	}
	return *s.Human
}

// Slots converts a schedule into its serialized form
func Slots(schedule []model.ScheduleSlot) []Slot {
	slots := make([]Slot, len(schedule))
	for i, s := range schedule {
		slots[i] = NewSlot(s.Time.Start, s.Time.End, s.Human)
	}
	return slots
}

// Write renders the schedule to w in the given format
func Write(w io.Writer, format Format, schedule []model.ScheduleSlot) error {
	switch format {
	case FormatNone:
		return nil
	case FormatHuman:
		return writeHuman(w, schedule)
	case FormatJSON:
		return writeJSON(w, schedule)
	case FormatCSV:
		return writeCSV(w, schedule)
	case FormatYAML:
		return writeYAML(w, schedule)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeHuman(w io.Writer, schedule []model.ScheduleSlot) error {
	for _, s := range schedule {
		human := s.Human
		if !s.IsAssigned() {
			human = Unassigned
		}
		if _, err := fmt.Fprintf(w, "  %s: %s\n", s.Time, human); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, schedule []model.ScheduleSlot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Slots(schedule)); err != nil {
		return fmt.Errorf("failed to encode schedule as json: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, schedule []model.ScheduleSlot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start", "end", "human"}); err != nil {
		return err
	}
	for _, s := range Slots(schedule) {
		if err := cw.Write([]string{s.Start, s.End, s.HumanOrUnassigned()}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, schedule []model.ScheduleSlot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Slots(schedule)); err != nil {
		return fmt.Errorf("failed to encode schedule as yaml: %w", err)
	}
	return enc.Close()
}
