package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (id, recipient, title, message, attributes, read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query, n.ID, n.Recipient, n.Title, n.Message, attrs, n.Read, n.CreatedAt)
	return err
}

func (r *notificationRepository) List(ctx context.Context, recipient string, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE recipient = $1`, recipient).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, recipient, title, message, attributes, read, created_at
	          FROM notifications WHERE recipient = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, recipient, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Title, &n.Message, &attrs, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipient string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND recipient = $2`, id, recipient)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("notification", id)
	}
	return nil
}
