package usecases

import (
	"context"

	"github.com/aegis-support/aegis/internal/domain/agent"
	"github.com/aegis-support/aegis/internal/infrastructure/auth"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	AgentID   uint   `json:"agent_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

type LoginUseCase struct {
	agentRepo  agent.Repository
	hasher     *auth.BcryptPasswordHasher
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewLoginUseCase(
	agentRepo agent.Repository,
	hasher *auth.BcryptPasswordHasher,
	jwtService *auth.JWTService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		agentRepo:  agentRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if len(cmd.Email) == 0 || len(cmd.Password) == 0 {
		return nil, errors.NewValidationError("email and password are required")
	}

	a, err := uc.agentRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		// A missing account and a wrong password are indistinguishable
		// to the caller.
		uc.logger.Warnw("login failed, unknown email", "email", cmd.Email)
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	if err := uc.hasher.Verify(cmd.Password, a.PasswordHash()); err != nil {
		uc.logger.Warnw("login failed, wrong password", "agent_id", a.ID())
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	token, expiresIn, err := uc.jwtService.Generate(a.ID(), a.Email(), a.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "agent_id", a.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue token")
	}

	uc.logger.Infow("agent logged in", "agent_id", a.ID(), "role", a.Role())
	return &LoginResult{
		Token:     token,
		ExpiresIn: expiresIn,
		AgentID:   a.ID(),
		Name:      a.Name(),
		Role:      a.Role(),
	}, nil
}
