package usecases

import (
	"context"

	"github.com/aegis-support/aegis/internal/domain/agent"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type mockAgentRepository struct {
	SaveFunc       func(ctx context.Context, a *agent.Agent) error
	GetByIDFunc    func(ctx context.Context, id uint) (*agent.Agent, error)
	GetByEmailFunc func(ctx context.Context, email string) (*agent.Agent, error)
}

func (m *mockAgentRepository) Save(ctx context.Context, a *agent.Agent) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAgentRepository) GetByID(ctx context.Context, id uint) (*agent.Agent, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAgentRepository) GetByEmail(ctx context.Context, email string) (*agent.Agent, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

type mockLogger struct{}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Named(name string) logger.Interface              { return m }
