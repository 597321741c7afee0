package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/security"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", 60)
	agent := &domain.Agent{ID: "agent-1", Name: "Alice", Email: "alice@test.com", Role: domain.AgentRoleManager}

	protected := AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		assert.True(t, ok)
		assert.Equal(t, "agent-1", actor.ID)
		assert.Equal(t, domain.AgentRoleManager, actor.Role)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("Valid bearer token passes through with the actor", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(agent)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/damage-reports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/damage-reports", nil)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Token signed with another secret is unauthorized", func(t *testing.T) {
		other := security.NewTokenManager("other-secret", 60)
		token, err := other.GenerateAccessToken(agent)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/damage-reports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/damage-reports", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
