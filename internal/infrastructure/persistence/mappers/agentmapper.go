package mappers

import (
	"github.com/aegis-support/aegis/internal/domain/agent"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
)

// AgentMapper handles the conversion between Agent domain entities and persistence models.
type AgentMapper interface {
	ToModel(a *agent.Agent) *models.AgentModel
	ToDomain(model *models.AgentModel) (*agent.Agent, error)
}

type AgentMapperImpl struct{}

func NewAgentMapper() AgentMapper {
	return &AgentMapperImpl{}
}

func (m *AgentMapperImpl) ToModel(a *agent.Agent) *models.AgentModel {
	return &models.AgentModel{
		ID:           a.ID(),
		Name:         a.Name(),
		Email:        a.Email(),
		PasswordHash: a.PasswordHash(),
		Role:         a.Role(),
		CreatedAt:    a.CreatedAt().UnixMilli(),
		UpdatedAt:    a.UpdatedAt().UnixMilli(),
	}
}

func (m *AgentMapperImpl) ToDomain(model *models.AgentModel) (*agent.Agent, error) {
	return agent.ReconstructAgent(
		model.ID,
		model.Name,
		model.Email,
		model.PasswordHash,
		model.Role,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}
