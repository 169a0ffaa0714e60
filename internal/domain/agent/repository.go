package agent

import "context"

type Repository interface {
	Save(ctx context.Context, a *Agent) error
	GetByID(ctx context.Context, id uint) (*Agent, error)
	GetByEmail(ctx context.Context, email string) (*Agent, error)
}
