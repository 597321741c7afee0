package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/repository"
)

type damageRecordRepository struct {
	db *sql.DB
}

func NewDamageRecordRepository(db *sql.DB) repository.DamageRecordRepository {
	return &damageRecordRepository{db: db}
}

const recordColumns = `id, rental_id, item_name, description, severity, category,
	repair_cost, photos, status, reported_by, reported_at, updated_at`

func (r *damageRecordRepository) Create(ctx context.Context, rec *domain.DamageRecord) error {
	query := `INSERT INTO damage_records (` + recordColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.RentalID, rec.ItemName, rec.Description,
		rec.Severity, rec.Category, rec.RepairCost, pq.Array(rec.Photos), rec.Status,
		rec.ReportedBy, rec.ReportedAt, rec.UpdatedAt)
	return err
}

func (r *damageRecordRepository) GetByID(ctx context.Context, id string) (*domain.DamageRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM damage_records WHERE id = $1`
	rec := &domain.DamageRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rec.ID, &rec.RentalID, &rec.ItemName,
		&rec.Description, &rec.Severity, &rec.Category, &rec.RepairCost, pq.Array(&rec.Photos),
		&rec.Status, &rec.ReportedBy, &rec.ReportedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("damage record", id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *damageRecordRepository) Update(ctx context.Context, rec *domain.DamageRecord) error {
	query := `UPDATE damage_records SET item_name=$1, description=$2, severity=$3, category=$4,
	          repair_cost=$5, photos=$6, status=$7, updated_at=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, rec.ItemName, rec.Description, rec.Severity,
		rec.Category, rec.RepairCost, pq.Array(rec.Photos), rec.Status, time.Now(), rec.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("damage record", rec.ID)
	}
	return nil
}

func (r *damageRecordRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM damage_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("damage record", id)
	}
	return nil
}

func (r *damageRecordRepository) ListByRental(ctx context.Context, rentalID string) ([]domain.DamageRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM damage_records WHERE rental_id = $1 ORDER BY reported_at DESC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *damageRecordRepository) List(ctx context.Context, rentalID string, status domain.RecordStatus, page, pageSize int32) ([]domain.DamageRecord, int32, error) {
	query := `SELECT ` + recordColumns + ` FROM damage_records WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if rentalID != "" {
		query += fmt.Sprintf(" AND rental_id = $%d", argIdx)
		args = append(args, rentalID)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	query += fmt.Sprintf(" ORDER BY reported_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, count, nil
}

func (r *damageRecordRepository) SummarizeByRental(ctx context.Context, rentalID string) (*domain.RentalDamageSummary, error) {
	query := `SELECT count(*), COALESCE(sum(repair_cost), 0),
	          COALESCE(sum(repair_cost) FILTER (WHERE status = $2), 0)
	          FROM damage_records WHERE rental_id = $1`
	s := &domain.RentalDamageSummary{RentalID: rentalID}
	err := r.db.QueryRowContext(ctx, query, rentalID, domain.RecordStatusPending).
		Scan(&s.RecordCount, &s.TotalCost, &s.PendingCost)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanRecords(rows *sql.Rows) ([]domain.DamageRecord, error) {
	var records []domain.DamageRecord
	for rows.Next() {
		var rec domain.DamageRecord
		if err := rows.Scan(&rec.ID, &rec.RentalID, &rec.ItemName, &rec.Description,
			&rec.Severity, &rec.Category, &rec.RepairCost, pq.Array(&rec.Photos),
			&rec.Status, &rec.ReportedBy, &rec.ReportedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
