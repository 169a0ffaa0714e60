package usecases

import (
	"context"
	"time"

	"github.com/aegis-support/aegis/internal/domain/issue"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type AddCommentCommand struct {
	IssueID    uint
	AuthorID   uint
	AuthorRole string
	Content    string
	IsInternal bool
}

type AddCommentResult struct {
	CommentID uint      `json:"comment_id"`
	IssueID   uint      `json:"issue_id"`
	CreatedAt time.Time `json:"created_at"`
}

type AddCommentUseCase struct {
	issueRepo   issue.Repository
	commentRepo issue.CommentRepository
	logger      logger.Interface
}

func NewAddCommentUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	// The issue must exist; a comment on a missing issue surfaces the
	// repository's not-found error unchanged.
	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		return nil, err
	}

	comment, err := issue.NewComment(iss.ID(), cmd.AuthorID, cmd.AuthorRole, cmd.Content, cmd.IsInternal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "issue_id", cmd.IssueID, "error", err)
		return nil, err
	}

	uc.logger.Infow("comment added", "issue_id", iss.ID(), "comment_id", comment.ID())
	return &AddCommentResult{
		CommentID: comment.ID(),
		IssueID:   iss.ID(),
		CreatedAt: comment.CreatedAt(),
	}, nil
}
