package postgres

import (
	"database/sql"

	"prorentals-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.DamageReportRepository
	repository.DamageRecordRepository
	repository.AgentRepository
	repository.InspectionRepository
	repository.WebhookEventRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		DamageReportRepository: NewDamageReportRepository(db),
		DamageRecordRepository: NewDamageRecordRepository(db),
		AgentRepository:        NewAgentRepository(db),
		InspectionRepository:   NewInspectionRepository(db),
		WebhookEventRepository: NewWebhookEventRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
