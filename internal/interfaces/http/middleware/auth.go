package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aegis-support/aegis/internal/domain/agent"
	"github.com/aegis-support/aegis/internal/infrastructure/auth"
	"github.com/aegis-support/aegis/internal/shared/logger"
	"github.com/aegis-support/aegis/internal/shared/utils"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextKeyAgentID   = "agent_id"
	ContextKeyAgentRole = "agent_role"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyAgentID, claims.AgentID)
		c.Set(ContextKeyAgentRole, claims.Role)

		c.Next()
	}
}

// RequireAdmin only passes requests whose token carries the admin role.
// It must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyAgentRole)
		if role != agent.RoleAdmin {
			utils.ErrorResponse(c, http.StatusForbidden, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AgentIDFromContext returns the authenticated agent's ID, or zero when
// the request was not authenticated.
func AgentIDFromContext(c *gin.Context) uint {
	v, ok := c.Get(ContextKeyAgentID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
