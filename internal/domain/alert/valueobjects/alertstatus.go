package valueobjects

import "fmt"

type AlertStatus string

const (
	StatusActive       AlertStatus = "active"
	StatusAcknowledged AlertStatus = "acknowledged"
	StatusResolved     AlertStatus = "resolved"
)

var validAlertStatuses = map[AlertStatus]bool{
	StatusActive:       true,
	StatusAcknowledged: true,
	StatusResolved:     true,
}

// Alerts move Active -> Acknowledged -> Resolved, with a direct
// Active -> Resolved edge when the breach clears before anyone
// acknowledges. Resolved is terminal: a new breach creates a new alert.
var alertStatusTransitions = map[AlertStatus][]AlertStatus{
	StatusActive:       {StatusAcknowledged, StatusResolved},
	StatusAcknowledged: {StatusResolved},
	StatusResolved:     {},
}

func (s AlertStatus) String() string {
	return string(s)
}

func (s AlertStatus) IsValid() bool {
	return validAlertStatuses[s]
}

func (s AlertStatus) CanTransitionTo(newStatus AlertStatus) bool {
	allowed, ok := alertStatusTransitions[s]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == newStatus {
			return true
		}
	}
	return false
}

func (s AlertStatus) IsActive() bool {
	return s == StatusActive
}

func (s AlertStatus) IsTerminal() bool {
	return s == StatusResolved
}

func NewAlertStatus(s string) (AlertStatus, error) {
	st := AlertStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid alert status: %s", s)
	}
	return st, nil
}
