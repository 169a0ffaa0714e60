package valueobjects

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityNormal   Severity = "normal"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var validSeverities = map[Severity]bool{
	SeverityLow:      true,
	SeverityNormal:   true,
	SeverityHigh:     true,
	SeverityCritical: true,
}

func (s Severity) String() string {
	return string(s)
}

func (s Severity) IsValid() bool {
	return validSeverities[s]
}

func (s Severity) IsCritical() bool {
	return s == SeverityCritical
}

func (s Severity) IsHighOrAbove() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// Weight returns the ordering weight used by priority scoring.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityNormal:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// SLAHours returns how long an issue of this severity may remain
// unresolved before it counts as an SLA breach.
func (s Severity) SLAHours() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 24
	case SeverityNormal:
		return 72
	default:
		return 168
	}
}

func NewSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return sev, nil
}
