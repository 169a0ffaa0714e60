package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/aegis-support/aegis/internal/domain/agent"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/mappers"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
	"github.com/aegis-support/aegis/internal/shared/db"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

type AgentRepository struct {
	db     *gorm.DB
	mapper mappers.AgentMapper
}

func NewAgentRepository(database *gorm.DB) *AgentRepository {
	return &AgentRepository{
		db:     database,
		mapper: mappers.NewAgentMapper(),
	}
}

func (r *AgentRepository) Save(ctx context.Context, a *agent.Agent) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return apperrors.NewConflictError("agent with this email already exists")
		}
		return fmt.Errorf("failed to save agent: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *AgentRepository) GetByID(ctx context.Context, id uint) (*agent.Agent, error) {
	var model models.AgentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("agent not found", fmt.Sprintf("id=%d", id))
		}
		return nil, fmt.Errorf("failed to find agent: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AgentRepository) GetByEmail(ctx context.Context, email string) (*agent.Agent, error) {
	var model models.AgentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("agent not found")
		}
		return nil, fmt.Errorf("failed to find agent: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
