package auth

import "github.com/aegis-support/aegis/internal/application/auth/usecases"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToCommand() usecases.LoginCommand {
	return usecases.LoginCommand{
		Email:    r.Email,
		Password: r.Password,
	}
}
