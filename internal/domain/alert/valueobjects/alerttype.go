package valueobjects

import "fmt"

type AlertType string

const (
	// TypeUnattended fires when an active issue ages past the breach
	// threshold without a status change.
	TypeUnattended AlertType = "unattended"
	// TypeEscalation fires when an issue sits in escalated status.
	TypeEscalation AlertType = "escalation"
	// TypeSLABreach fires when an issue outlives its severity's SLA.
	TypeSLABreach AlertType = "sla_breach"
	// TypeCustomerEscalation fires when one customer accumulates too
	// many concurrent high-severity issues.
	TypeCustomerEscalation AlertType = "customer_escalation"
)

var validAlertTypes = map[AlertType]bool{
	TypeUnattended:         true,
	TypeEscalation:         true,
	TypeSLABreach:          true,
	TypeCustomerEscalation: true,
}

func (t AlertType) String() string {
	return string(t)
}

func (t AlertType) IsValid() bool {
	return validAlertTypes[t]
}

func NewAlertType(s string) (AlertType, error) {
	t := AlertType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid alert type: %s", s)
	}
	return t, nil
}
