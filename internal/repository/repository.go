package repository

import (
	"context"
	"errors"
	"time"

	"prorentals-backend/internal/domain"
)

// ErrVersionConflict is returned by compare-and-swap updates when the stored
// version no longer matches the version the caller loaded
var ErrVersionConflict = errors.New("version conflict: report was modified concurrently")

type DamageReportRepository interface {
	Create(ctx context.Context, report *domain.DamageReport) error
	GetByID(ctx context.Context, id string) (*domain.DamageReport, error)
	// Update persists the report only if the stored version equals
	// expectedVersion, and returns ErrVersionConflict otherwise. The report's
	// Version field must already hold the incremented value.
	Update(ctx context.Context, report *domain.DamageReport, expectedVersion int32) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ReportFilter) ([]domain.DamageReport, int32, error)
	// FindInFlightByRental returns the report holding the rental's
	// draft/submitted slot, or nil when the slot is free
	FindInFlightByRental(ctx context.Context, rentalID string) (*domain.DamageReport, error)
	ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]domain.DamageReport, error)
}

type DamageRecordRepository interface {
	Create(ctx context.Context, record *domain.DamageRecord) error
	GetByID(ctx context.Context, id string) (*domain.DamageRecord, error)
	Update(ctx context.Context, record *domain.DamageRecord) error
	Delete(ctx context.Context, id string) error
	ListByRental(ctx context.Context, rentalID string) ([]domain.DamageRecord, error)
	List(ctx context.Context, rentalID string, status domain.RecordStatus, page, pageSize int32) ([]domain.DamageRecord, int32, error)
	SummarizeByRental(ctx context.Context, rentalID string) (*domain.RentalDamageSummary, error)
}

type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	ListByRole(ctx context.Context, role domain.AgentRole) ([]domain.Agent, error)
}

type InspectionRepository interface {
	Create(ctx context.Context, task *domain.InspectionTask) error
	ListPendingDueBefore(ctx context.Context, cutoff time.Time) ([]domain.InspectionTask, error)
	MarkCompleted(ctx context.Context, id string) error
}

type WebhookEventRepository interface {
	Create(ctx context.Context, event *domain.WebhookEvent) error
	Exists(ctx context.Context, provider domain.WebhookProvider, eventID string) (bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, recipient string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, recipient string) error
}
