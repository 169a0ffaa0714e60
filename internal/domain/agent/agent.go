package agent

import (
	"fmt"
	"time"
)

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// Agent is a support staff account. Password hashing happens in the
// infrastructure layer; the entity only ever sees the hash.
type Agent struct {
	id           uint
	name         string
	email        string
	passwordHash string
	role         string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewAgent(name, email, passwordHash, role string) (*Agent, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if role != RoleAgent && role != RoleAdmin {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now().UTC()
	return &Agent{
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructAgent(id uint, name, email, passwordHash, role string, createdAt, updatedAt time.Time) (*Agent, error) {
	if id == 0 {
		return nil, fmt.Errorf("agent ID cannot be zero")
	}

	return &Agent{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (a *Agent) ID() uint             { return a.id }
func (a *Agent) Name() string         { return a.name }
func (a *Agent) Email() string        { return a.email }
func (a *Agent) PasswordHash() string { return a.passwordHash }
func (a *Agent) Role() string         { return a.role }
func (a *Agent) CreatedAt() time.Time { return a.createdAt }
func (a *Agent) UpdatedAt() time.Time { return a.updatedAt }

func (a *Agent) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("agent ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("agent ID cannot be zero")
	}
	a.id = id
	return nil
}
