package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/gateway/asaas"
	"prorentals-backend/internal/gateway/lalamove"
	"prorentals-backend/internal/logger"
	"prorentals-backend/internal/repository"
)

// WebhookService processes authenticated gateway events. The receiver gives
// no dedup guarantee of its own; replays are detected via the recorded event
// log and skipped on a best-effort basis.
type WebhookService interface {
	ProcessAsaasEvent(ctx context.Context, event *asaas.WebhookEvent, raw []byte) error
	ProcessLalamoveEvent(ctx context.Context, payload *lalamove.WebhookPayload, raw []byte) error
}

type webhookService struct {
	eventRepo  repository.WebhookEventRepository
	reportRepo repository.DamageReportRepository
	noteRepo   repository.NotificationRepository
}

func NewWebhookService(
	eventRepo repository.WebhookEventRepository,
	reportRepo repository.DamageReportRepository,
	noteRepo repository.NotificationRepository,
) WebhookService {
	return &webhookService{eventRepo: eventRepo, reportRepo: reportRepo, noteRepo: noteRepo}
}

func (s *webhookService) ProcessAsaasEvent(ctx context.Context, event *asaas.WebhookEvent, raw []byte) error {
	if event.ID != "" {
		seen, err := s.eventRepo.Exists(ctx, domain.ProviderAsaas, event.ID)
		if err != nil {
			return err
		}
		if seen {
			logger.Info("Skipping replayed payment event", "event_id", event.ID, "event", event.Event)
			return nil
		}
	}

	if err := s.recordEvent(ctx, domain.ProviderAsaas, event.ID, event.Event, raw); err != nil {
		return err
	}

	status := asaas.MapPaymentStatus(event.Payment.Status)
	logger.Info("Payment event received",
		"event", event.Event,
		"payment_id", event.Payment.ID,
		"provider_status", event.Payment.Status,
		"status", status)

	switch event.Event {
	case "PAYMENT_CONFIRMED", "PAYMENT_RECEIVED":
		s.notifyPaymentSettled(ctx, event, status)
	case "PAYMENT_OVERDUE":
		s.notifyPaymentProblem(ctx, event, "Payment Overdue")
	case "PAYMENT_REFUNDED":
		s.notifyPaymentProblem(ctx, event, "Payment Refunded")
	case "PAYMENT_CREATED", "PAYMENT_UPDATED", "PAYMENT_DELETED", "PAYMENT_RESTORED":
		// Informational only
	default:
		logger.Warn("Unhandled payment event type", "event", event.Event)
	}
	return nil
}

func (s *webhookService) ProcessLalamoveEvent(ctx context.Context, payload *lalamove.WebhookPayload, raw []byte) error {
	if payload.EventID != "" {
		seen, err := s.eventRepo.Exists(ctx, domain.ProviderLalamove, payload.EventID)
		if err != nil {
			return err
		}
		if seen {
			logger.Info("Skipping replayed delivery event", "event_id", payload.EventID, "event", payload.EventType)
			return nil
		}
	}

	if err := s.recordEvent(ctx, domain.ProviderLalamove, payload.EventID, payload.EventType, raw); err != nil {
		return err
	}

	status := lalamove.MapDeliveryStatus(payload.Data.Order.Status)
	logger.Info("Delivery event received",
		"event", payload.EventType,
		"order_id", payload.Data.Order.ID,
		"provider_status", payload.Data.Order.Status,
		"status", status)

	note := &domain.Notification{
		ID:        uuid.New().String(),
		Recipient: "dispatch",
		Title:     "Delivery Status Update",
		Message:   fmt.Sprintf("Delivery order %s is now %s", payload.Data.Order.ID, status),
		Attributes: map[string]string{
			"type":     "DELIVERY_" + string(status),
			"order_id": payload.Data.Order.ID,
		},
		CreatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create delivery notification", "order_id", payload.Data.Order.ID, "error", err)
	}
	return nil
}

func (s *webhookService) recordEvent(ctx context.Context, provider domain.WebhookProvider, eventID, eventType string, raw []byte) error {
	return s.eventRepo.Create(ctx, &domain.WebhookEvent{
		ID:         uuid.New().String(),
		Provider:   provider,
		EventID:    eventID,
		EventType:  eventType,
		Payload:    string(raw),
		ReceivedAt: time.Now(),
	})
}

// notifyPaymentSettled informs the report creator when a billed report's
// charge settles. The charge's external reference carries the report id.
func (s *webhookService) notifyPaymentSettled(ctx context.Context, event *asaas.WebhookEvent, status domain.PaymentStatus) {
	if event.Payment.ExternalReference == "" {
		return
	}
	rpt, err := s.reportRepo.GetByID(ctx, event.Payment.ExternalReference)
	if err != nil {
		logger.Warn("Payment event references unknown report",
			"payment_id", event.Payment.ID, "reference", event.Payment.ExternalReference)
		return
	}

	note := &domain.Notification{
		ID:        uuid.New().String(),
		Recipient: rpt.CreatedBy,
		Title:     "Damage Charge Settled",
		Message:   fmt.Sprintf("Payment for report %s is now %s", rpt.ID, status),
		Attributes: map[string]string{
			"type":       "PAYMENT_" + string(status),
			"report_id":  rpt.ID,
			"payment_id": event.Payment.ID,
		},
		CreatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create payment notification", "report_id", rpt.ID, "error", err)
	}
}

func (s *webhookService) notifyPaymentProblem(ctx context.Context, event *asaas.WebhookEvent, title string) {
	if event.Payment.ExternalReference == "" {
		return
	}
	rpt, err := s.reportRepo.GetByID(ctx, event.Payment.ExternalReference)
	if err != nil {
		return
	}

	note := &domain.Notification{
		ID:        uuid.New().String(),
		Recipient: rpt.CreatedBy,
		Title:     title,
		Message:   fmt.Sprintf("Payment %s for report %s needs attention", event.Payment.ID, rpt.ID),
		Attributes: map[string]string{
			"type":       "PAYMENT_ATTENTION",
			"report_id":  rpt.ID,
			"payment_id": event.Payment.ID,
		},
		CreatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create payment notification", "report_id", rpt.ID, "error", err)
	}
}
