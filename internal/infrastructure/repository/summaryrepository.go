package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/mappers"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
	"github.com/aegis-support/aegis/internal/shared/db"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

type SummaryRepository struct {
	db     *gorm.DB
	mapper mappers.TemplateMapper
}

func NewSummaryRepository(database *gorm.DB) *SummaryRepository {
	return &SummaryRepository{
		db:     database,
		mapper: mappers.NewTemplateMapper(),
	}
}

func (r *SummaryRepository) Save(ctx context.Context, summary *guidance.Summary) error {
	model := r.mapper.SummaryToModel(summary)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	return summary.SetID(model.ID)
}

func (r *SummaryRepository) GetLatestByIssueID(ctx context.Context, issueID uint) (*guidance.Summary, error) {
	var model models.SummaryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("issue_id = ?", issueID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("summary not found", fmt.Sprintf("issue_id=%d", issueID))
		}
		return nil, fmt.Errorf("failed to find summary: %w", err)
	}

	return r.mapper.SummaryToDomain(&model)
}
