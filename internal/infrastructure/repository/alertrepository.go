package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aegis-support/aegis/internal/domain/alert"
	vo "github.com/aegis-support/aegis/internal/domain/alert/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/mappers"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
	"github.com/aegis-support/aegis/internal/shared/db"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

var nonTerminalAlertStatuses = []string{"active", "acknowledged"}

type AlertRepository struct {
	db     *gorm.DB
	mapper mappers.AlertMapper
}

func NewAlertRepository(database *gorm.DB) *AlertRepository {
	return &AlertRepository{
		db:     database,
		mapper: mappers.NewAlertMapper(),
	}
}

// CreateIfNoActive inserts the alert unless a non-resolved alert of the
// same type already exists for the issue. The existence check and the
// insert run in one transaction so concurrent sweeps cannot both
// create; the application layer additionally serializes per-key, but
// the database check is what holds across processes.
func (r *AlertRepository) CreateIfNoActive(ctx context.Context, a *alert.Alert) (bool, error) {
	created := false

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.AlertModel{}).
			Where("issue_id = ? AND alert_type = ?", a.IssueID(), a.Type().String()).
			Where("status IN ?", nonTerminalAlertStatuses).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check existing alerts: %w", err)
		}
		if count > 0 {
			return nil
		}

		model := r.mapper.ToModel(a)
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create alert: %w", err)
		}
		if err := a.SetID(model.ID); err != nil {
			return err
		}
		created = true
		return nil
	})

	return created, err
}

func (r *AlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AlertModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update alert: %w", result.Error)
	}

	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id uint) (*alert.Alert, error) {
	var model models.AlertModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("alert not found", fmt.Sprintf("id=%d", id))
		}
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AlertRepository) ListActive(ctx context.Context) ([]*alert.Alert, error) {
	var modelList []models.AlertModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("status IN ?", nonTerminalAlertStatuses).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *AlertRepository) ListByIssueID(ctx context.Context, issueID uint) ([]*alert.Alert, error) {
	var modelList []models.AlertModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("issue_id = ?", issueID).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list issue alerts: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *AlertRepository) CountActiveByIssueAndType(ctx context.Context, issueID uint, alertType vo.AlertType) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.AlertModel{}).
		Where("issue_id = ? AND alert_type = ?", issueID, alertType.String()).
		Where("status IN ?", nonTerminalAlertStatuses).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active alerts: %w", err)
	}

	return count, nil
}

func (r *AlertRepository) toDomainList(modelList []models.AlertModel) ([]*alert.Alert, error) {
	alerts := make([]*alert.Alert, 0, len(modelList))
	for i := range modelList {
		a, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}
