package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/gateway/asaas"
	"prorentals-backend/internal/logger"
	"prorentals-backend/internal/repository"
	"prorentals-backend/internal/utils"
)

// PaymentGateway is the slice of the Asaas client the billing service needs
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req *asaas.PaymentRequest, idempotencyKey string) (*asaas.Payment, error)
	ListCustomers(ctx context.Context, email, externalReference string, offset, limit int) (*asaas.CustomerList, error)
}

type billingService struct {
	reportRepo    repository.DamageReportRepository
	agentRepo     repository.AgentRepository
	noteRepo      repository.NotificationRepository
	emailSvc      EmailService
	gateway       PaymentGateway
	maxTotal      float64
	maxAdjustment float64
}

func NewBillingService(
	reportRepo repository.DamageReportRepository,
	agentRepo repository.AgentRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	gateway PaymentGateway,
	maxTotal, maxAdjustment float64,
) BillingService {
	return &billingService{
		reportRepo:    reportRepo,
		agentRepo:     agentRepo,
		noteRepo:      noteRepo,
		emailSvc:      emailSvc,
		gateway:       gateway,
		maxTotal:      maxTotal,
		maxAdjustment: maxAdjustment,
	}
}

// EligibleForAutoBilling is pure and side-effect free. A report is ineligible
// when the total exceeds the cap, when any adjustment moved a cost by more
// than the allowed delta, or when a partial approval excluded any item.
func (s *billingService) EligibleForAutoBilling(rpt *domain.DamageReport) bool {
	if rpt.TotalCost > s.maxTotal {
		return false
	}
	for _, d := range rpt.Damages {
		if d.Approved != nil && !*d.Approved {
			return false
		}
		if d.OriginalCost != nil && math.Abs(d.RepairCost-*d.OriginalCost) > s.maxAdjustment {
			return false
		}
	}
	return true
}

// BillReport creates the gateway charge and transitions approved → billed.
// The idempotency key is derived from the report id, so a retried billing
// call cannot double-charge.
func (s *billingService) BillReport(ctx context.Context, reportID, customerID string) (*domain.DamageReport, error) {
	rpt, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rpt.Status != domain.ReportStatusApproved {
		return nil, domain.NewInvalidStateError(string(rpt.Status), "bill")
	}

	if customerID == "" {
		customerID, err = s.resolveCustomer(ctx, rpt.RentalID)
		if err != nil {
			return nil, err
		}
	}

	req := &asaas.PaymentRequest{
		Customer:          customerID,
		BillingType:       "BOLETO",
		Value:             utils.Round2(rpt.TotalCost),
		DueDate:           time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Description:       fmt.Sprintf("Damage charges for rental %s", rpt.RentalID),
		ExternalReference: rpt.ID,
	}
	payment, err := s.gateway.CreatePayment(ctx, req, "damage-report-"+rpt.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rpt.Status = domain.ReportStatusBilled
	rpt.BilledAt = &now
	rpt.BillingReference = payment.ID
	expected := rpt.Version
	rpt.Version++
	if err := s.reportRepo.Update(ctx, rpt, expected); err != nil {
		return nil, mapSaveError(err, reportID)
	}

	s.notifyBilled(ctx, rpt)
	return rpt, nil
}

func (s *billingService) resolveCustomer(ctx context.Context, rentalID string) (string, error) {
	list, err := s.gateway.ListCustomers(ctx, "", rentalID, 0, 1)
	if err != nil {
		return "", err
	}
	if len(list.Data) == 0 {
		return "", domain.NewValidationError(
			fmt.Sprintf("no gateway customer is linked to rental %s", rentalID),
			domain.FieldError{Field: "customer_id", Message: "required when the rental has no linked gateway customer"})
	}
	return list.Data[0].ID, nil
}

func (s *billingService) notifyBilled(ctx context.Context, rpt *domain.DamageReport) {
	creator, err := s.agentRepo.GetByID(ctx, rpt.CreatedBy)
	if err != nil {
		logger.Error("Failed to load report creator for billing notification", "report_id", rpt.ID, "error", err)
		return
	}
	_ = s.emailSvc.SendReportBilledNotification(ctx, creator.Email, rpt.ID, rpt.BillingReference, rpt.TotalCost)

	note := &domain.Notification{
		ID:        uuid.New().String(),
		Recipient: creator.ID,
		Title:     "Damage Report Billed",
		Message:   fmt.Sprintf("Report for rental %s was billed, reference %s", rpt.RentalID, rpt.BillingReference),
		Attributes: map[string]string{
			"type":              "REPORT_BILLED",
			"report_id":         rpt.ID,
			"billing_reference": rpt.BillingReference,
		},
		CreatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create billing notification", "report_id", rpt.ID, "error", err)
	}
}
