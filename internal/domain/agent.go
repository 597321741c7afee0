package domain

import "time"

type AgentRole string

const (
	AgentRoleAgent   AgentRole = "AGENT"
	AgentRoleManager AgentRole = "MANAGER"
	AgentRoleAdmin   AgentRole = "ADMIN"
)

// Agent is a back-office user: creates damage reports, approves or rejects
// them, manages damage records
type Agent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         AgentRole `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Elevated reports whether the agent may edit restricted fields on
// approved damage records
func (a *Agent) Elevated() bool {
	return a.Role == AgentRoleManager || a.Role == AgentRoleAdmin
}
