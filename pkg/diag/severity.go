package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic or note.
type Severity uint8

const (
	// SevInfo is for context that accompanies other findings.
	SevInfo Severity = iota

	// SevWarn is for advisory findings; lints emit these.
	SevWarn

	// SevError is for fatal parse and resolution failures surfaced as diagnostics.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarn:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity name. "warn" is accepted for "warning".
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SevInfo, nil
	case "warn", "warning":
		return SevWarn, nil
	case "error":
		return SevError, nil
	default:
		return SevInfo, fmt.Errorf("unknown severity %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
