package usecases

import (
	"context"
	"time"

	"github.com/aegis-support/aegis/internal/domain/alert"
	"github.com/aegis-support/aegis/internal/domain/issue"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type ActiveAlert struct {
	AlertID        uint       `json:"alert_id"`
	IssueID        uint       `json:"issue_id"`
	IssueTitle     string     `json:"issue_title"`
	AlertType      string     `json:"alert_type"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	Status         string     `json:"status"`
	AcknowledgedBy *uint      `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ListActiveAlertsResult struct {
	Alerts []ActiveAlert `json:"alerts"`
	Total  int           `json:"total"`
}

type ListActiveAlertsUseCase struct {
	alertRepo alert.Repository
	issueRepo issue.Repository
	logger    logger.Interface
}

func NewListActiveAlertsUseCase(
	alertRepo alert.Repository,
	issueRepo issue.Repository,
	logger logger.Interface,
) *ListActiveAlertsUseCase {
	return &ListActiveAlertsUseCase{
		alertRepo: alertRepo,
		issueRepo: issueRepo,
		logger:    logger,
	}
}

func (uc *ListActiveAlertsUseCase) Execute(ctx context.Context) (*ListActiveAlertsResult, error) {
	alerts, err := uc.alertRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list active alerts", "error", err)
		return nil, err
	}

	ids := make([]uint, 0, len(alerts))
	seen := make(map[uint]bool, len(alerts))
	for _, a := range alerts {
		if !seen[a.IssueID()] {
			seen[a.IssueID()] = true
			ids = append(ids, a.IssueID())
		}
	}

	titles := make(map[uint]string, len(ids))
	if len(ids) > 0 {
		issues, err := uc.issueRepo.GetByIDs(ctx, ids)
		if err != nil {
			uc.logger.Errorw("failed to load alert issues", "error", err)
			return nil, err
		}
		for _, iss := range issues {
			titles[iss.ID()] = iss.Title()
		}
	}

	result := make([]ActiveAlert, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, ActiveAlert{
			AlertID:        a.ID(),
			IssueID:        a.IssueID(),
			IssueTitle:     titles[a.IssueID()],
			AlertType:      a.Type().String(),
			Severity:       a.Severity().String(),
			Message:        a.Message(),
			Status:         a.Status().String(),
			AcknowledgedBy: a.AcknowledgedBy(),
			AcknowledgedAt: a.AcknowledgedAt(),
			CreatedAt:      a.CreatedAt(),
		})
	}

	return &ListActiveAlertsResult{Alerts: result, Total: len(result)}, nil
}
