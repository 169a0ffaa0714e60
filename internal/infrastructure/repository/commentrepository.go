package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aegis-support/aegis/internal/domain/issue"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/mappers"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
	"github.com/aegis-support/aegis/internal/shared/db"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewCommentRepository(database *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     database,
		mapper: mappers.NewIssueMapper(),
	}
}

func (r *CommentRepository) Save(ctx context.Context, comment *issue.Comment) error {
	model := r.mapper.CommentToModel(comment)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	return comment.SetID(model.ID)
}

func (r *CommentRepository) ListByIssueID(ctx context.Context, issueID uint) ([]*issue.Comment, error) {
	var modelList []models.IssueCommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*issue.Comment, 0, len(modelList))
	for i := range modelList {
		c, err := r.mapper.CommentToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}
