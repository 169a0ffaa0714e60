package customer

import (
	"fmt"
	"time"

	vo "github.com/aegis-support/aegis/internal/domain/customer/valueobjects"
)

type Customer struct {
	id        uint
	name      string
	email     string
	company   string
	tier      vo.Tier
	createdAt time.Time
}

func NewCustomer(name, email, company string, tier vo.Tier) (*Customer, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid tier")
	}

	return &Customer{
		name:      name,
		email:     email,
		company:   company,
		tier:      tier,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructCustomer(id uint, name, email, company string, tier vo.Tier, createdAt time.Time) (*Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("customer ID cannot be zero")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid tier")
	}
	return &Customer{
		id:        id,
		name:      name,
		email:     email,
		company:   company,
		tier:      tier,
		createdAt: createdAt,
	}, nil
}

func (c *Customer) ID() uint             { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) Company() string      { return c.company }
func (c *Customer) Tier() vo.Tier        { return c.tier }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }

func (c *Customer) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("customer ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("customer ID cannot be zero")
	}
	c.id = id
	return nil
}
