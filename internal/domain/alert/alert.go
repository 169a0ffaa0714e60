package alert

import (
	"fmt"
	"time"

	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"

	vo "github.com/aegis-support/aegis/internal/domain/alert/valueobjects"
)

// Alert is a critical-issue alert raised by the monitor. The monitor is
// the sole writer of alerts; acknowledgment and manual resolution are
// external triggers validated against the current status.
type Alert struct {
	id             uint
	issueID        uint
	alertType      vo.AlertType
	severity       issuevo.Severity
	message        string
	status         vo.AlertStatus
	acknowledgedBy *uint
	acknowledgedAt *time.Time
	resolvedAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewAlert(issueID uint, alertType vo.AlertType, severity issuevo.Severity, message string) (*Alert, error) {
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if !alertType.IsValid() {
		return nil, fmt.Errorf("invalid alert type")
	}
	if !severity.IsValid() {
		return nil, fmt.Errorf("invalid severity")
	}
	if len(message) == 0 {
		return nil, fmt.Errorf("message is required")
	}

	now := time.Now().UTC()
	return &Alert{
		issueID:   issueID,
		alertType: alertType,
		severity:  severity,
		message:   message,
		status:    vo.StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructAlert(
	id uint,
	issueID uint,
	alertType vo.AlertType,
	severity issuevo.Severity,
	message string,
	status vo.AlertStatus,
	acknowledgedBy *uint,
	acknowledgedAt *time.Time,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Alert, error) {
	if id == 0 {
		return nil, fmt.Errorf("alert ID cannot be zero")
	}
	if !alertType.IsValid() {
		return nil, fmt.Errorf("invalid alert type")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid alert status")
	}

	return &Alert{
		id:             id,
		issueID:        issueID,
		alertType:      alertType,
		severity:       severity,
		message:        message,
		status:         status,
		acknowledgedBy: acknowledgedBy,
		acknowledgedAt: acknowledgedAt,
		resolvedAt:     resolvedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (a *Alert) ID() uint                    { return a.id }
func (a *Alert) IssueID() uint               { return a.issueID }
func (a *Alert) Type() vo.AlertType          { return a.alertType }
func (a *Alert) Severity() issuevo.Severity  { return a.severity }
func (a *Alert) Message() string             { return a.message }
func (a *Alert) Status() vo.AlertStatus      { return a.status }
func (a *Alert) AcknowledgedBy() *uint       { return a.acknowledgedBy }
func (a *Alert) AcknowledgedAt() *time.Time  { return a.acknowledgedAt }
func (a *Alert) ResolvedAt() *time.Time      { return a.resolvedAt }
func (a *Alert) CreatedAt() time.Time        { return a.createdAt }
func (a *Alert) UpdatedAt() time.Time        { return a.updatedAt }

func (a *Alert) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("alert ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("alert ID cannot be zero")
	}
	a.id = id
	return nil
}

// Acknowledge moves the alert to acknowledged. Acknowledging an alert
// that is already acknowledged or resolved is a no-op, reported via the
// returned bool rather than an error.
func (a *Alert) Acknowledge(by uint) bool {
	if !a.status.CanTransitionTo(vo.StatusAcknowledged) {
		return false
	}
	now := time.Now().UTC()
	a.status = vo.StatusAcknowledged
	a.acknowledgedBy = &by
	a.acknowledgedAt = &now
	a.updatedAt = now
	return true
}

// Resolve closes out the alert, either because the underlying issue
// left the breach condition or by explicit operator action. Resolving a
// resolved alert is a no-op.
func (a *Alert) Resolve() bool {
	if !a.status.CanTransitionTo(vo.StatusResolved) {
		return false
	}
	now := time.Now().UTC()
	a.status = vo.StatusResolved
	a.resolvedAt = &now
	a.updatedAt = now
	return true
}
