package usecases

import (
	"context"
	"time"

	"github.com/aegis-support/aegis/internal/domain/issue"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type GetIssueCommand struct {
	IssueID      uint
	WithComments bool
}

type IssueComment struct {
	CommentID  uint      `json:"comment_id"`
	AuthorID   uint      `json:"author_id"`
	AuthorRole string    `json:"author_role"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

type IssueDetail struct {
	IssueID     uint           `json:"issue_id"`
	CustomerID  uint           `json:"customer_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Severity    string         `json:"severity"`
	Status      string         `json:"status"`
	ProductArea string         `json:"product_area,omitempty"`
	Priority    int            `json:"priority"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Comments    []IssueComment `json:"comments,omitempty"`
}

type GetIssueUseCase struct {
	issueRepo   issue.Repository
	commentRepo issue.CommentRepository
	logger      logger.Interface
}

func NewGetIssueUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	logger logger.Interface,
) *GetIssueUseCase {
	return &GetIssueUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, cmd GetIssueCommand) (*IssueDetail, error) {
	if cmd.IssueID == 0 {
		return nil, errors.NewValidationError("issue ID is required")
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		return nil, err
	}

	detail := toIssueDetail(iss)

	if cmd.WithComments {
		comments, err := uc.commentRepo.ListByIssueID(ctx, cmd.IssueID)
		if err != nil {
			uc.logger.Errorw("failed to load comments", "issue_id", cmd.IssueID, "error", err)
			return nil, err
		}
		detail.Comments = make([]IssueComment, 0, len(comments))
		for _, c := range comments {
			detail.Comments = append(detail.Comments, IssueComment{
				CommentID:  c.ID(),
				AuthorID:   c.AuthorID(),
				AuthorRole: c.AuthorRole(),
				Content:    c.Content(),
				IsInternal: c.IsInternal(),
				CreatedAt:  c.CreatedAt(),
			})
		}
	}

	return detail, nil
}

func toIssueDetail(iss *issue.Issue) *IssueDetail {
	return &IssueDetail{
		IssueID:     iss.ID(),
		CustomerID:  iss.CustomerID(),
		Title:       iss.Title(),
		Description: iss.Description(),
		Category:    iss.Category().String(),
		Severity:    iss.Severity().String(),
		Status:      iss.Status().String(),
		ProductArea: iss.ProductArea(),
		Priority:    iss.Priority(),
		ResolvedAt:  iss.ResolvedAt(),
		CreatedAt:   iss.CreatedAt(),
		UpdatedAt:   iss.UpdatedAt(),
	}
}
