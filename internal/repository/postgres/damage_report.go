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

type damageReportRepository struct {
	db *sql.DB
}

func NewDamageReportRepository(db *sql.DB) repository.DamageReportRepository {
	return &damageReportRepository{db: db}
}

const reportColumns = `id, rental_id, total_cost, status, created_by, created_at,
	submitted_at, submission_notes, approved_at, approved_by, approval_notes,
	rejected_at, rejected_by, rejection_reason, rejection_category, rejection_feedback,
	suggested_actions, allow_resubmission, billed_at, billing_reference, version, updated_at`

func (r *damageReportRepository) Create(ctx context.Context, rpt *domain.DamageReport) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO damage_reports (` + reportColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err = tx.ExecContext(ctx, query,
		rpt.ID, rpt.RentalID, rpt.TotalCost, rpt.Status, rpt.CreatedBy, rpt.CreatedAt,
		rpt.SubmittedAt, rpt.SubmissionNotes, rpt.ApprovedAt, rpt.ApprovedBy, rpt.ApprovalNotes,
		rpt.RejectedAt, rpt.RejectedBy, rpt.RejectionReason, rpt.RejectionCategory, rpt.RejectionFeedback,
		pq.Array(rpt.SuggestedActions), rpt.AllowResubmission, rpt.BilledAt, rpt.BillingReference,
		rpt.Version, rpt.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertItems(ctx, tx, rpt.ID, rpt.Damages); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *damageReportRepository) GetByID(ctx context.Context, id string) (*domain.DamageReport, error) {
	query := `SELECT ` + reportColumns + ` FROM damage_reports WHERE id = $1`
	rpt, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("damage report", id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, rpt); err != nil {
		return nil, err
	}
	return rpt, nil
}

// Update rewrites the aggregate in one transaction. The UPDATE is guarded by
// the expected version; zero affected rows means a concurrent writer won.
func (r *damageReportRepository) Update(ctx context.Context, rpt *domain.DamageReport, expectedVersion int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE damage_reports SET
		total_cost=$1, status=$2, submitted_at=$3, submission_notes=$4,
		approved_at=$5, approved_by=$6, approval_notes=$7,
		rejected_at=$8, rejected_by=$9, rejection_reason=$10, rejection_category=$11,
		rejection_feedback=$12, suggested_actions=$13, allow_resubmission=$14,
		billed_at=$15, billing_reference=$16, version=$17, updated_at=$18
		WHERE id=$19 AND version=$20`
	res, err := tx.ExecContext(ctx, query,
		rpt.TotalCost, rpt.Status, rpt.SubmittedAt, rpt.SubmissionNotes,
		rpt.ApprovedAt, rpt.ApprovedBy, rpt.ApprovalNotes,
		rpt.RejectedAt, rpt.RejectedBy, rpt.RejectionReason, rpt.RejectionCategory,
		rpt.RejectionFeedback, pq.Array(rpt.SuggestedActions), rpt.AllowResubmission,
		rpt.BilledAt, rpt.BillingReference, rpt.Version, time.Now(),
		rpt.ID, expectedVersion)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrVersionConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM damage_items WHERE report_id = $1`, rpt.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, rpt.ID, rpt.Damages); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *damageReportRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM damage_items WHERE report_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM damage_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("damage report", id)
	}
	return tx.Commit()
}

func (r *damageReportRepository) List(ctx context.Context, filter domain.ReportFilter) ([]domain.DamageReport, int32, error) {
	query := `SELECT ` + reportColumns + ` FROM damage_reports WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.RentalID != "" {
		query += fmt.Sprintf(" AND rental_id = $%d", argIdx)
		args = append(args, filter.RentalID)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.CreatedBy != "" {
		query += fmt.Sprintf(" AND created_by = $%d", argIdx)
		args = append(args, filter.CreatedBy)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reports []domain.DamageReport
	for rows.Next() {
		rpt, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, *rpt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range reports {
		if err := r.loadItems(ctx, &reports[i]); err != nil {
			return nil, 0, err
		}
	}
	return reports, count, nil
}

func (r *damageReportRepository) FindInFlightByRental(ctx context.Context, rentalID string) (*domain.DamageReport, error) {
	query := `SELECT ` + reportColumns + ` FROM damage_reports
	          WHERE rental_id = $1 AND status IN ($2, $3) LIMIT 1`
	rpt, err := scanReport(r.db.QueryRowContext(ctx, query, rentalID, domain.ReportStatusDraft, domain.ReportStatusSubmitted))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, rpt); err != nil {
		return nil, err
	}
	return rpt, nil
}

func (r *damageReportRepository) ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]domain.DamageReport, error) {
	query := `SELECT ` + reportColumns + ` FROM damage_reports
	          WHERE status = $1 AND submitted_at < $2 ORDER BY submitted_at ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.ReportStatusSubmitted, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.DamageReport
	for rows.Next() {
		rpt, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rpt)
	}
	return reports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*domain.DamageReport, error) {
	rpt := &domain.DamageReport{}
	err := row.Scan(
		&rpt.ID, &rpt.RentalID, &rpt.TotalCost, &rpt.Status, &rpt.CreatedBy, &rpt.CreatedAt,
		&rpt.SubmittedAt, &rpt.SubmissionNotes, &rpt.ApprovedAt, &rpt.ApprovedBy, &rpt.ApprovalNotes,
		&rpt.RejectedAt, &rpt.RejectedBy, &rpt.RejectionReason, &rpt.RejectionCategory, &rpt.RejectionFeedback,
		pq.Array(&rpt.SuggestedActions), &rpt.AllowResubmission, &rpt.BilledAt, &rpt.BillingReference,
		&rpt.Version, &rpt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rpt, nil
}

func (r *damageReportRepository) loadItems(ctx context.Context, rpt *domain.DamageReport) error {
	query := `SELECT id, item_name, description, severity, category, repair_cost, photos,
	          reported_by, reported_at, approved, adjustment_reason, original_cost
	          FROM damage_items WHERE report_id = $1 ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, rpt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var items []domain.DamageItem
	for rows.Next() {
		var d domain.DamageItem
		if err := rows.Scan(&d.ID, &d.ItemName, &d.Description, &d.Severity, &d.Category,
			&d.RepairCost, pq.Array(&d.Photos), &d.ReportedBy, &d.ReportedAt,
			&d.Approved, &d.AdjustmentReason, &d.OriginalCost); err != nil {
			return err
		}
		items = append(items, d)
	}
	rpt.Damages = items
	return rows.Err()
}

func insertItems(ctx context.Context, tx *sql.Tx, reportID string, items []domain.DamageItem) error {
	query := `INSERT INTO damage_items (id, report_id, position, item_name, description, severity,
	          category, repair_cost, photos, reported_by, reported_at, approved, adjustment_reason, original_cost)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for i, d := range items {
		_, err := tx.ExecContext(ctx, query, d.ID, reportID, i, d.ItemName, d.Description,
			d.Severity, d.Category, d.RepairCost, pq.Array(d.Photos), d.ReportedBy, d.ReportedAt,
			d.Approved, d.AdjustmentReason, d.OriginalCost)
		if err != nil {
			return err
		}
	}
	return nil
}
