package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/security"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	agent := &domain.Agent{
		ID:           "agent-1",
		Name:         "Alice",
		Email:        "alice@test.com",
		PasswordHash: string(hash),
		Role:         domain.AgentRoleAgent,
	}

	t.Run("Success issues a verifiable token", func(t *testing.T) {
		agentRepo := new(MockAgentRepo)
		svc := NewAuthService(agentRepo, tokens)
		agentRepo.On("GetByEmail", ctx, "alice@test.com").Return(agent, nil)

		token, got, err := svc.Login(ctx, "alice@test.com", "correct horse")
		assert.NoError(t, err)
		assert.Equal(t, agent.ID, got.ID)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "agent-1", claims.AgentID)
		assert.Equal(t, domain.AgentRoleAgent, claims.Role)
	})

	t.Run("Wrong password fails", func(t *testing.T) {
		agentRepo := new(MockAgentRepo)
		svc := NewAuthService(agentRepo, tokens)
		agentRepo.On("GetByEmail", ctx, "alice@test.com").Return(agent, nil)

		_, _, err := svc.Login(ctx, "alice@test.com", "wrong")
		var aerr *domain.AuthorizationError
		assert.ErrorAs(t, err, &aerr)
	})

	t.Run("Unknown email fails the same way", func(t *testing.T) {
		agentRepo := new(MockAgentRepo)
		svc := NewAuthService(agentRepo, tokens)
		agentRepo.On("GetByEmail", ctx, "nobody@test.com").Return(nil,
			domain.NewNotFoundError("agent", "nobody@test.com"))

		_, _, err := svc.Login(ctx, "nobody@test.com", "whatever")
		var aerr *domain.AuthorizationError
		assert.ErrorAs(t, err, &aerr)
	})
}

func TestAuthService_CreateAgent(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60)
	admin := Actor{ID: "admin-1", Role: domain.AgentRoleAdmin}

	t.Run("Only admins may create agents", func(t *testing.T) {
		svc := NewAuthService(new(MockAgentRepo), tokens)
		manager := Actor{ID: "mgr-1", Role: domain.AgentRoleManager}

		_, err := svc.CreateAgent(ctx, manager, "Bob", "bob@test.com", "long enough", domain.AgentRoleAgent)
		var aerr *domain.AuthorizationError
		assert.ErrorAs(t, err, &aerr)
	})

	t.Run("Success stores a hashed password", func(t *testing.T) {
		agentRepo := new(MockAgentRepo)
		svc := NewAuthService(agentRepo, tokens)
		agentRepo.On("GetByEmail", ctx, "bob@test.com").Return(nil,
			domain.NewNotFoundError("agent", "bob@test.com"))
		agentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Agent")).Return(nil)

		created, err := svc.CreateAgent(ctx, admin, "Bob", "bob@test.com", "long enough", domain.AgentRoleAgent)
		assert.NoError(t, err)
		assert.NotEqual(t, "long enough", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("long enough")))
	})

	t.Run("Duplicate email conflicts", func(t *testing.T) {
		agentRepo := new(MockAgentRepo)
		svc := NewAuthService(agentRepo, tokens)
		agentRepo.On("GetByEmail", ctx, "bob@test.com").Return(&domain.Agent{ID: "agent-9"}, nil)

		_, err := svc.CreateAgent(ctx, admin, "Bob", "bob@test.com", "long enough", domain.AgentRoleAgent)
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "agent-9", conflict.ExistingID)
	})

	t.Run("Weak input fails validation", func(t *testing.T) {
		svc := NewAuthService(new(MockAgentRepo), tokens)
		_, err := svc.CreateAgent(ctx, admin, "", "not-an-email", "short", "SUPERVISOR")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 4)
	})
}
