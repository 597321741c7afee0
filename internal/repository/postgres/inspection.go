package postgres

import (
	"context"
	"database/sql"
	"time"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/repository"
)

type inspectionRepository struct {
	db *sql.DB
}

func NewInspectionRepository(db *sql.DB) repository.InspectionRepository {
	return &inspectionRepository{db: db}
}

func (r *inspectionRepository) Create(ctx context.Context, t *domain.InspectionTask) error {
	query := `INSERT INTO inspection_tasks (id, report_id, rental_id, requested_by, status, due_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.ReportID, t.RentalID, t.RequestedBy, t.Status, t.DueAt, t.CreatedAt)
	return err
}

func (r *inspectionRepository) ListPendingDueBefore(ctx context.Context, cutoff time.Time) ([]domain.InspectionTask, error) {
	query := `SELECT id, report_id, rental_id, requested_by, status, due_at, created_at, completed_at
	          FROM inspection_tasks WHERE status = $1 AND due_at < $2 ORDER BY due_at ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.InspectionStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.InspectionTask
	for rows.Next() {
		var t domain.InspectionTask
		if err := rows.Scan(&t.ID, &t.ReportID, &t.RentalID, &t.RequestedBy, &t.Status,
			&t.DueAt, &t.CreatedAt, &t.CompletedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *inspectionRepository) MarkCompleted(ctx context.Context, id string) error {
	query := `UPDATE inspection_tasks SET status=$1, completed_at=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, domain.InspectionStatusCompleted, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("inspection task", id)
	}
	return nil
}
