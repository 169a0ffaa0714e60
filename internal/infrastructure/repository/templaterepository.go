package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/mappers"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
	"github.com/aegis-support/aegis/internal/shared/db"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

type TemplateRepository struct {
	db     *gorm.DB
	mapper mappers.TemplateMapper
}

func NewTemplateRepository(database *gorm.DB) *TemplateRepository {
	return &TemplateRepository{
		db:     database,
		mapper: mappers.NewTemplateMapper(),
	}
}

func (r *TemplateRepository) Save(ctx context.Context, template *guidance.ResponseTemplate) error {
	model := r.mapper.ToModel(template)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	return template.SetID(model.ID)
}

func (r *TemplateRepository) Update(ctx context.Context, template *guidance.ResponseTemplate) error {
	model := r.mapper.ToModel(template)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ResponseTemplateModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update template: %w", result.Error)
	}

	return nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uint) (*guidance.ResponseTemplate, error) {
	var model models.ResponseTemplateModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("template not found", fmt.Sprintf("id=%d", id))
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TemplateRepository) ListActive(ctx context.Context, category vo.TemplateCategory, severity *issuevo.Severity, limit int) ([]*guidance.ResponseTemplate, error) {
	if limit <= 0 {
		limit = 3
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ResponseTemplateModel{}).
		Where("is_active = ?", true).
		Where("category = ?", category.String())

	if severity != nil {
		query = query.Where("severity = ? OR severity IS NULL", severity.String())
	}

	var modelList []models.ResponseTemplateModel
	if err := query.
		Order("effectiveness_score DESC, usage_count DESC").
		Limit(limit).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]*guidance.ResponseTemplate, 0, len(modelList))
	for i := range modelList {
		t, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}
