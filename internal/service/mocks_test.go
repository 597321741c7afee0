package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/gateway/asaas"
)

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, report *domain.DamageReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
func (m *MockReportRepo) GetByID(ctx context.Context, id string) (*domain.DamageReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DamageReport), args.Error(1)
}
func (m *MockReportRepo) Update(ctx context.Context, report *domain.DamageReport, expectedVersion int32) error {
	args := m.Called(ctx, report, expectedVersion)
	return args.Error(0)
}
func (m *MockReportRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockReportRepo) List(ctx context.Context, filter domain.ReportFilter) ([]domain.DamageReport, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.DamageReport), args.Get(1).(int32), args.Error(2)
}
func (m *MockReportRepo) FindInFlightByRental(ctx context.Context, rentalID string) (*domain.DamageReport, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DamageReport), args.Error(1)
}
func (m *MockReportRepo) ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]domain.DamageReport, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.DamageReport), args.Error(1)
}

// MockRecordRepo
type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) Create(ctx context.Context, record *domain.DamageRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
func (m *MockRecordRepo) GetByID(ctx context.Context, id string) (*domain.DamageRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DamageRecord), args.Error(1)
}
func (m *MockRecordRepo) Update(ctx context.Context, record *domain.DamageRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
func (m *MockRecordRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRecordRepo) ListByRental(ctx context.Context, rentalID string) ([]domain.DamageRecord, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.DamageRecord), args.Error(1)
}
func (m *MockRecordRepo) List(ctx context.Context, rentalID string, status domain.RecordStatus, page, pageSize int32) ([]domain.DamageRecord, int32, error) {
	args := m.Called(ctx, rentalID, status, page, pageSize)
	return args.Get(0).([]domain.DamageRecord), args.Get(1).(int32), args.Error(2)
}
func (m *MockRecordRepo) SummarizeByRental(ctx context.Context, rentalID string) (*domain.RentalDamageSummary, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalDamageSummary), args.Error(1)
}

// MockAgentRepo
type MockAgentRepo struct {
	mock.Mock
}

func (m *MockAgentRepo) Create(ctx context.Context, agent *domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}
func (m *MockAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}
func (m *MockAgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}
func (m *MockAgentRepo) ListByRole(ctx context.Context, role domain.AgentRole) ([]domain.Agent, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.Agent), args.Error(1)
}

// MockInspectionRepo
type MockInspectionRepo struct {
	mock.Mock
}

func (m *MockInspectionRepo) Create(ctx context.Context, task *domain.InspectionTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
func (m *MockInspectionRepo) ListPendingDueBefore(ctx context.Context, cutoff time.Time) ([]domain.InspectionTask, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.InspectionTask), args.Error(1)
}
func (m *MockInspectionRepo) MarkCompleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWebhookEventRepo
type MockWebhookEventRepo struct {
	mock.Mock
}

func (m *MockWebhookEventRepo) Create(ctx context.Context, event *domain.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockWebhookEventRepo) Exists(ctx context.Context, provider domain.WebhookProvider, eventID string) (bool, error) {
	args := m.Called(ctx, provider, eventID)
	return args.Bool(0), args.Error(1)
}
func (m *MockWebhookEventRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, recipient string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, recipient, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, recipient string) error {
	args := m.Called(ctx, id, recipient)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReportSubmittedNotification(ctx context.Context, email, reportID, rentalID string, totalCost float64) error {
	args := m.Called(ctx, email, reportID, rentalID, totalCost)
	return args.Error(0)
}
func (m *MockEmailService) SendReportApprovedNotification(ctx context.Context, email, reportID string, totalCost float64, notes string) error {
	args := m.Called(ctx, email, reportID, totalCost, notes)
	return args.Error(0)
}
func (m *MockEmailService) SendReportRejectedNotification(ctx context.Context, email, reportID, reason string, category domain.RejectionCategory) error {
	args := m.Called(ctx, email, reportID, reason, category)
	return args.Error(0)
}
func (m *MockEmailService) SendReportBilledNotification(ctx context.Context, email, reportID, billingReference string, amount float64) error {
	args := m.Called(ctx, email, reportID, billingReference, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendInspectionReminder(ctx context.Context, email, reportID, rentalID string, dueAt time.Time) error {
	args := m.Called(ctx, email, reportID, rentalID, dueAt)
	return args.Error(0)
}
func (m *MockEmailService) SendStaleReportReminder(ctx context.Context, email, reportID string, submittedAt time.Time) error {
	args := m.Called(ctx, email, reportID, submittedAt)
	return args.Error(0)
}

// MockBillingService
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) EligibleForAutoBilling(report *domain.DamageReport) bool {
	args := m.Called(report)
	return args.Bool(0)
}
func (m *MockBillingService) BillReport(ctx context.Context, reportID, customerID string) (*domain.DamageReport, error) {
	args := m.Called(ctx, reportID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DamageReport), args.Error(1)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePayment(ctx context.Context, req *asaas.PaymentRequest, idempotencyKey string) (*asaas.Payment, error) {
	args := m.Called(ctx, req, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asaas.Payment), args.Error(1)
}
func (m *MockPaymentGateway) ListCustomers(ctx context.Context, email, externalReference string, offset, limit int) (*asaas.CustomerList, error) {
	args := m.Called(ctx, email, externalReference, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asaas.CustomerList), args.Error(1)
}

// MockPhotoService
type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) UploadPhotos(ctx context.Context, rentalID string, files []PhotoUpload) ([]PhotoResult, error) {
	args := m.Called(ctx, rentalID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PhotoResult), args.Error(1)
}
func (m *MockPhotoService) ListPhotos(ctx context.Context, rentalID string) ([]string, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockPhotoService) DeletePhoto(ctx context.Context, rentalID, filename string) error {
	args := m.Called(ctx, rentalID, filename)
	return args.Error(0)
}
func (m *MockPhotoService) DeleteByURL(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
