package mappers

import (
	"fmt"

	"github.com/aegis-support/aegis/internal/domain/customer"
	vo "github.com/aegis-support/aegis/internal/domain/customer/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
)

// CustomerMapper handles the conversion between Customer domain entities and persistence models.
type CustomerMapper interface {
	ToModel(c *customer.Customer) *models.CustomerModel
	ToDomain(model *models.CustomerModel) (*customer.Customer, error)
}

type CustomerMapperImpl struct{}

func NewCustomerMapper() CustomerMapper {
	return &CustomerMapperImpl{}
}

func (m *CustomerMapperImpl) ToModel(c *customer.Customer) *models.CustomerModel {
	return &models.CustomerModel{
		ID:        c.ID(),
		Name:      c.Name(),
		Email:     c.Email(),
		Company:   c.Company(),
		Tier:      c.Tier().String(),
		CreatedAt: c.CreatedAt().UnixMilli(),
	}
}

func (m *CustomerMapperImpl) ToDomain(model *models.CustomerModel) (*customer.Customer, error) {
	tier, err := vo.NewTier(model.Tier)
	if err != nil {
		return nil, fmt.Errorf("invalid tier for customer %d: %w", model.ID, err)
	}

	return customer.ReconstructCustomer(
		model.ID,
		model.Name,
		model.Email,
		model.Company,
		tier,
		convertMillisToTime(model.CreatedAt),
	)
}
