package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/aegis-support/aegis/internal/domain/issue"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

// historyNamespace mirrors the analysis package's cache namespace for
// customer history rollups. Status changes alter the rollup, so the
// write path drops the customer's cached entry.
const historyNamespace = "history"

type UpdateIssueStatusCommand struct {
	IssueID   uint
	NewStatus string
}

type UpdateIssueStatusResult struct {
	IssueID    uint       `json:"issue_id"`
	Status     string     `json:"status"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

type UpdateIssueStatusUseCase struct {
	issueRepo issue.Repository
	store     cache.Store
	logger    logger.Interface
}

func NewUpdateIssueStatusUseCase(
	issueRepo issue.Repository,
	store cache.Store,
	logger logger.Interface,
) *UpdateIssueStatusUseCase {
	return &UpdateIssueStatusUseCase{
		issueRepo: issueRepo,
		store:     store,
		logger:    logger,
	}
}

func (uc *UpdateIssueStatusUseCase) Execute(ctx context.Context, cmd UpdateIssueStatusCommand) (*UpdateIssueStatusResult, error) {
	uc.logger.Infow("executing update issue status use case", "issue_id", cmd.IssueID, "new_status", cmd.NewStatus)

	if cmd.IssueID == 0 {
		return nil, errors.NewValidationError("issue ID is required")
	}
	newStatus, err := issuevo.NewIssueStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		uc.logger.Errorw("failed to load issue", "issue_id", cmd.IssueID, "error", err)
		return nil, err
	}

	if err := iss.ChangeStatus(newStatus); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.issueRepo.Update(ctx, iss); err != nil {
		uc.logger.Errorw("failed to persist status change", "issue_id", cmd.IssueID, "error", err)
		return nil, err
	}

	key := fmt.Sprintf("customer:%d", iss.CustomerID())
	if err := uc.store.Invalidate(ctx, historyNamespace, key); err != nil {
		uc.logger.Warnw("failed to invalidate history cache", "customer_id", iss.CustomerID(), "error", err)
	}

	uc.logger.Infow("issue status updated", "issue_id", iss.ID(), "status", iss.Status().String())
	return &UpdateIssueStatusResult{
		IssueID:    iss.ID(),
		Status:     iss.Status().String(),
		ResolvedAt: iss.ResolvedAt(),
	}, nil
}
