package customer

import "context"

type Repository interface {
	Save(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uint) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
}
