package postgres

import (
	"context"
	"database/sql"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/repository"
)

type agentRepository struct {
	db *sql.DB
}

func NewAgentRepository(db *sql.DB) repository.AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(ctx context.Context, a *domain.Agent) error {
	query := `INSERT INTO agents (id, name, email, password_hash, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.CreatedAt)
	return err
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM agents WHERE id = $1`
	a := &domain.Agent{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("agent", id)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *agentRepository) ListByRole(ctx context.Context, role domain.AgentRole) ([]domain.Agent, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM agents WHERE role = $1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var a domain.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM agents WHERE email = $1`
	a := &domain.Agent{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("agent", email)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
