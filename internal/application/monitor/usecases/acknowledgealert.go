package usecases

import (
	"context"

	"github.com/aegis-support/aegis/internal/domain/alert"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type AcknowledgeAlertCommand struct {
	AlertID uint
	AgentID uint
}

type AcknowledgeAlertResult struct {
	AlertID      uint   `json:"alert_id"`
	Status       string `json:"status"`
	Acknowledged bool   `json:"acknowledged"`
}

type AcknowledgeAlertUseCase struct {
	alertRepo alert.Repository
	logger    logger.Interface
}

func NewAcknowledgeAlertUseCase(alertRepo alert.Repository, logger logger.Interface) *AcknowledgeAlertUseCase {
	return &AcknowledgeAlertUseCase{
		alertRepo: alertRepo,
		logger:    logger,
	}
}

// Execute acknowledges an active alert. Acknowledging an alert that is
// already acknowledged or resolved is reported as a no-op, not an
// error; the first acknowledger is kept.
func (uc *AcknowledgeAlertUseCase) Execute(ctx context.Context, cmd AcknowledgeAlertCommand) (*AcknowledgeAlertResult, error) {
	if cmd.AlertID == 0 {
		return nil, errors.NewValidationError("alert ID is required")
	}
	if cmd.AgentID == 0 {
		return nil, errors.NewValidationError("agent ID is required")
	}

	a, err := uc.alertRepo.GetByID(ctx, cmd.AlertID)
	if err != nil {
		uc.logger.Errorw("failed to load alert", "alert_id", cmd.AlertID, "error", err)
		return nil, err
	}

	if !a.Acknowledge(cmd.AgentID) {
		return &AcknowledgeAlertResult{
			AlertID:      a.ID(),
			Status:       a.Status().String(),
			Acknowledged: false,
		}, nil
	}

	if err := uc.alertRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to persist alert acknowledgement", "alert_id", cmd.AlertID, "error", err)
		return nil, err
	}

	uc.logger.Infow("alert acknowledged", "alert_id", a.ID(), "agent_id", cmd.AgentID)
	return &AcknowledgeAlertResult{
		AlertID:      a.ID(),
		Status:       a.Status().String(),
		Acknowledged: true,
	}, nil
}
