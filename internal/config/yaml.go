package config

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/oncall-rota/pkg/core/constraints"
)

// Constraint tags accepted in config files
const (
	TagDayOfWeek     = "!DayOfWeek"
	TagTimeOfDay     = "!TimeOfDay"
	TagTimeRange     = "!TimeRange" // older name for TimeOfDay
	TagUnavailable   = "!Unavailable"
	TagNone          = "!None"
	TagUnconstrained = "!Unconstrained"
)

// ConstraintList is an ordered list of tagged constraints
type ConstraintList []constraints.Constraint

func (l *ConstraintList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: constraints must be a list", node.Line)
	}

	result := make(ConstraintList, 0, len(node.Content))
	for i, item := range node.Content {
		c, err := decodeConstraint(item)
		if err != nil {
			return fmt.Errorf("line %d: constraints[%d]: %w", item.Line, i, err)
		}
		result = append(result, c)
	}

	*l = result
	return nil
}

func decodeConstraint(node *yaml.Node) (constraints.Constraint, error) {
	switch node.Tag {
	case TagNone, TagUnconstrained:
		return constraints.Unconstrained{}, nil

	case TagDayOfWeek:
		if node.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%s expects a list of weekdays", node.Tag)
		}
		days := make([]time.Weekday, 0, len(node.Content))
		for _, item := range node.Content {
			day, err := constraints.ParseWeekday(item.Value)
			if err != nil {
				return nil, err
			}
			days = append(days, day)
		}
		return constraints.NewDayOfWeek(days...), nil

	case TagTimeOfDay, TagTimeRange:
		fields, err := mappingFields(node, "start", "end")
		if err != nil {
			return nil, err
		}
		start, err := constraints.ParseClock(fields["start"])
		if err != nil {
			return nil, err
		}
		end, err := constraints.ParseClock(fields["end"])
		if err != nil {
			return nil, err
		}
		return constraints.NewTimeOfDay(start, end), nil

	case TagUnavailable:
		fields, err := mappingFields(node, "start", "end")
		if err != nil {
			return nil, err
		}
		start, err := constraints.ParseDate(fields["start"])
		if err != nil {
			return nil, err
		}
		end, err := constraints.ParseDate(fields["end"])
		if err != nil {
			return nil, err
		}
		return constraints.NewUnavailable(start, end), nil

	default:
		return nil, fmt.Errorf("unknown constraint tag %q", node.Tag)
	}
}

// mappingFields reads a flat mapping of scalars, requiring every listed key
func mappingFields(node *yaml.Node, required ...string) (map[string]string, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s expects a mapping with keys %v", node.Tag, required)
	}

	fields := make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s: %q must be a scalar", node.Tag, key.Value)
		}
		fields[key.Value] = value.Value
	}

	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%s: missing %q", node.Tag, key)
		}
	}

	return fields, nil
}

// Humans maps a person identifier to their config entry
type Humans map[string]Human

// Names returns the person identifiers in lexicographic order
func (h Humans) Names() []string {
	return slices.Sorted(maps.Keys(h))
}

func (h *Humans) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: humans must be a mapping", node.Line)
	}

	result := make(Humans, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if _, exists := result[key.Value]; exists {
			return fmt.Errorf("line %d: humans.%s is defined more than once", key.Line, key.Value)
		}

		var human Human
		if err := value.Decode(&human); err != nil {
			return fmt.Errorf("humans.%s: %w", key.Value, err)
		}
		result[key.Value] = human
	}

	*h = result
	return nil
}

// humanFields is Human without its custom decoder
type humanFields Human

// UnmarshalYAML accepts either a bare constraint list or the full mapping form
func (h *Human) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&h.Constraints)
	case yaml.MappingNode:
		var fields humanFields
		if err := node.Decode(&fields); err != nil {
			return err
		}
		*h = Human(fields)
		return nil
	case yaml.ScalarNode:
		// An empty entry means no personal constraints
		if node.Tag == "!!null" {
			return nil
		}
	}
	return fmt.Errorf("line %d: expected a constraint list or a mapping", node.Line)
}
