package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/repository"
	"prorentals-backend/internal/security"
)

type authService struct {
	agentRepo repository.AgentRepository
	tokens    security.TokenManager
}

func NewAuthService(agentRepo repository.AgentRepository, tokens security.TokenManager) AuthService {
	return &authService{agentRepo: agentRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Agent, error) {
	agent, err := s.agentRepo.GetByEmail(ctx, email)
	if err != nil {
		// Indistinguishable from a wrong password
		return "", nil, domain.NewAuthorizationError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.NewAuthorizationError("invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(agent)
	if err != nil {
		return "", nil, err
	}
	return token, agent, nil
}

func (s *authService) CreateAgent(ctx context.Context, actor Actor, name, email, password string, role domain.AgentRole) (*domain.Agent, error) {
	if actor.Role != domain.AgentRoleAdmin {
		return nil, domain.NewAuthorizationError("only admins may create agents")
	}

	var fields []domain.FieldError
	if strings.TrimSpace(name) == "" {
		fields = append(fields, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if !strings.Contains(email, "@") {
		fields = append(fields, domain.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(password) < 8 {
		fields = append(fields, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	switch role {
	case domain.AgentRoleAgent, domain.AgentRoleManager, domain.AgentRoleAdmin:
	default:
		fields = append(fields, domain.FieldError{Field: "role", Message: "unknown role"})
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid agent", fields...)
	}

	if existing, err := s.agentRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.NewConflictError("an agent with this email already exists", existing.ID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	agent := &domain.Agent{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}
