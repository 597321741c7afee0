package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/gateway/asaas"
	"prorentals-backend/internal/gateway/lalamove"
)

func TestWebhookService_ProcessAsaasEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Confirmed payment notifies the report creator", func(t *testing.T) {
		eventRepo := new(MockWebhookEventRepo)
		reportRepo := new(MockReportRepo)
		noteRepo := new(MockNotificationRepo)
		svc := NewWebhookService(eventRepo, reportRepo, noteRepo)

		rpt := submittedReport("agent-1")
		rpt.Status = domain.ReportStatusBilled

		eventRepo.On("Exists", ctx, domain.ProviderAsaas, "evt_1").Return(false, nil)
		eventRepo.On("Create", ctx, mock.AnythingOfType("*domain.WebhookEvent")).Return(nil)
		reportRepo.On("GetByID", ctx, "rpt-1").Return(rpt, nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		event := &asaas.WebhookEvent{
			ID:    "evt_1",
			Event: "PAYMENT_CONFIRMED",
			Payment: asaas.Payment{
				ID:                "pay_1",
				Status:            "CONFIRMED",
				ExternalReference: "rpt-1",
			},
		}
		err := svc.ProcessAsaasEvent(ctx, event, []byte(`{"event":"PAYMENT_CONFIRMED"}`))
		assert.NoError(t, err)
		noteRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*domain.Notification"))
	})

	t.Run("Replayed event is skipped", func(t *testing.T) {
		eventRepo := new(MockWebhookEventRepo)
		reportRepo := new(MockReportRepo)
		noteRepo := new(MockNotificationRepo)
		svc := NewWebhookService(eventRepo, reportRepo, noteRepo)

		eventRepo.On("Exists", ctx, domain.ProviderAsaas, "evt_1").Return(true, nil)

		event := &asaas.WebhookEvent{ID: "evt_1", Event: "PAYMENT_CONFIRMED"}
		err := svc.ProcessAsaasEvent(ctx, event, []byte(`{}`))
		assert.NoError(t, err)
		eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown report reference is tolerated", func(t *testing.T) {
		eventRepo := new(MockWebhookEventRepo)
		reportRepo := new(MockReportRepo)
		noteRepo := new(MockNotificationRepo)
		svc := NewWebhookService(eventRepo, reportRepo, noteRepo)

		eventRepo.On("Exists", ctx, domain.ProviderAsaas, "evt_2").Return(false, nil)
		eventRepo.On("Create", ctx, mock.AnythingOfType("*domain.WebhookEvent")).Return(nil)
		reportRepo.On("GetByID", ctx, "missing").Return(nil, domain.NewNotFoundError("damage report", "missing"))

		event := &asaas.WebhookEvent{
			ID:    "evt_2",
			Event: "PAYMENT_RECEIVED",
			Payment: asaas.Payment{
				ID:                "pay_2",
				Status:            "RECEIVED",
				ExternalReference: "missing",
			},
		}
		err := svc.ProcessAsaasEvent(ctx, event, []byte(`{}`))
		assert.NoError(t, err)
		noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestWebhookService_ProcessLalamoveEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivery update records the event and raises a dispatch notice", func(t *testing.T) {
		eventRepo := new(MockWebhookEventRepo)
		reportRepo := new(MockReportRepo)
		noteRepo := new(MockNotificationRepo)
		svc := NewWebhookService(eventRepo, reportRepo, noteRepo)

		eventRepo.On("Exists", ctx, domain.ProviderLalamove, "evt_9").Return(false, nil)
		eventRepo.On("Create", ctx, mock.AnythingOfType("*domain.WebhookEvent")).Return(nil)
		noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Recipient == "dispatch" && n.Attributes["order_id"] == "ord_1"
		})).Return(nil)

		payload := &lalamove.WebhookPayload{EventID: "evt_9", EventType: "ORDER_STATUS_CHANGED"}
		payload.Data.Order = lalamove.Order{ID: "ord_1", Status: "PICKED_UP"}

		err := svc.ProcessLalamoveEvent(ctx, payload, []byte(`{}`))
		assert.NoError(t, err)
		noteRepo.AssertExpectations(t)
	})
}
