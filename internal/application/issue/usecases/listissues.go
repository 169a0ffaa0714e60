package usecases

import (
	"context"

	"github.com/aegis-support/aegis/internal/domain/issue"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type ListIssuesCommand struct {
	CustomerID *uint
	Status     string
	Severity   string
	Category   string
	Page       int
	PageSize   int
}

type ListIssuesResult struct {
	Issues   []IssueDetail `json:"issues"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

type ListIssuesUseCase struct {
	issueRepo issue.Repository
	logger    logger.Interface
}

func NewListIssuesUseCase(issueRepo issue.Repository, logger logger.Interface) *ListIssuesUseCase {
	return &ListIssuesUseCase{
		issueRepo: issueRepo,
		logger:    logger,
	}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, cmd ListIssuesCommand) (*ListIssuesResult, error) {
	filter, err := uc.buildFilter(cmd)
	if err != nil {
		return nil, err
	}

	issues, total, err := uc.issueRepo.List(ctx, *filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues", "error", err)
		return nil, err
	}

	details := make([]IssueDetail, 0, len(issues))
	for _, iss := range issues {
		details = append(details, *toIssueDetail(iss))
	}

	return &ListIssuesResult{
		Issues:   details,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListIssuesUseCase) buildFilter(cmd ListIssuesCommand) (*issue.IssueFilter, error) {
	filter := issue.IssueFilter{
		CustomerID: cmd.CustomerID,
		Page:       cmd.Page,
		PageSize:   cmd.PageSize,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	if cmd.Status != "" {
		status, err := issuevo.NewIssueStatus(cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if cmd.Severity != "" {
		severity, err := issuevo.NewSeverity(cmd.Severity)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Severity = &severity
	}
	if cmd.Category != "" {
		category, err := issuevo.NewCategory(cmd.Category)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Category = &category
	}

	return &filter, nil
}
