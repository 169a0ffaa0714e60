package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/aegis-support/aegis/internal/domain/customer"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/mappers"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
	"github.com/aegis-support/aegis/internal/shared/db"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

type CustomerRepository struct {
	db     *gorm.DB
	mapper mappers.CustomerMapper
}

func NewCustomerRepository(database *gorm.DB) *CustomerRepository {
	return &CustomerRepository{
		db:     database,
		mapper: mappers.NewCustomerMapper(),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return apperrors.NewConflictError("customer with this email already exists")
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model models.CustomerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("customer not found", fmt.Sprintf("id=%d", id))
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model models.CustomerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("customer not found")
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
