package mappers

import (
	"fmt"
	"time"

	"github.com/aegis-support/aegis/internal/domain/alert"
	vo "github.com/aegis-support/aegis/internal/domain/alert/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
)

// AlertMapper handles the conversion between Alert domain entities and persistence models.
type AlertMapper interface {
	ToModel(a *alert.Alert) *models.AlertModel
	ToDomain(model *models.AlertModel) (*alert.Alert, error)
}

type AlertMapperImpl struct{}

func NewAlertMapper() AlertMapper {
	return &AlertMapperImpl{}
}

func (m *AlertMapperImpl) ToModel(a *alert.Alert) *models.AlertModel {
	model := &models.AlertModel{
		ID:             a.ID(),
		IssueID:        a.IssueID(),
		AlertType:      a.Type().String(),
		Severity:       a.Severity().String(),
		Message:        a.Message(),
		Status:         a.Status().String(),
		AcknowledgedBy: a.AcknowledgedBy(),
		CreatedAt:      a.CreatedAt().UnixMilli(),
		UpdatedAt:      a.UpdatedAt().UnixMilli(),
	}

	if a.AcknowledgedAt() != nil {
		acked := a.AcknowledgedAt().UnixMilli()
		model.AcknowledgedAt = &acked
	}
	if a.ResolvedAt() != nil {
		resolved := a.ResolvedAt().UnixMilli()
		model.ResolvedAt = &resolved
	}

	return model
}

func (m *AlertMapperImpl) ToDomain(model *models.AlertModel) (*alert.Alert, error) {
	alertType, err := vo.NewAlertType(model.AlertType)
	if err != nil {
		return nil, fmt.Errorf("invalid alert type for alert %d: %w", model.ID, err)
	}
	severity, err := issuevo.NewSeverity(model.Severity)
	if err != nil {
		return nil, fmt.Errorf("invalid severity for alert %d: %w", model.ID, err)
	}
	status, err := vo.NewAlertStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status for alert %d: %w", model.ID, err)
	}

	var acknowledgedAt, resolvedAt *time.Time
	if model.AcknowledgedAt != nil {
		t := convertMillisToTime(*model.AcknowledgedAt)
		acknowledgedAt = &t
	}
	if model.ResolvedAt != nil {
		t := convertMillisToTime(*model.ResolvedAt)
		resolvedAt = &t
	}

	return alert.ReconstructAlert(
		model.ID,
		model.IssueID,
		alertType,
		severity,
		model.Message,
		status,
		model.AcknowledgedBy,
		acknowledgedAt,
		resolvedAt,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}
