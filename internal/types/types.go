package types

import (
	"fmt"
	"strings"
)

// Position is a location inside a source file. Offset is the byte
// offset from the start of the file; Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      Position
	End        Position
	Confidence float64
	Severity   Severity
}

// Severity is the reporting level of a rule.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityOff:
		return "off"
	}
	return "unknown"
}

// UnmarshalYAML accepts the textual severity names used in the
// configuration file.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch strings.ToLower(raw) {
	case "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity: %q", raw)
	}
	return nil
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// ConfigRule holds the per-rule settings from the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
