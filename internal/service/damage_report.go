package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/logger"
	"prorentals-backend/internal/repository"
)

const minRejectionReasonLen = 10
const minDescriptionLen = 10

type damageReportService struct {
	reportRepo     repository.DamageReportRepository
	agentRepo      repository.AgentRepository
	noteRepo       repository.NotificationRepository
	inspectionRepo repository.InspectionRepository
	emailSvc       EmailService
	billingSvc     BillingService
	notifyMinTotal float64
}

func NewDamageReportService(
	reportRepo repository.DamageReportRepository,
	agentRepo repository.AgentRepository,
	noteRepo repository.NotificationRepository,
	inspectionRepo repository.InspectionRepository,
	emailSvc EmailService,
	billingSvc BillingService,
	notifyMinTotal float64,
) DamageReportService {
	return &damageReportService{
		reportRepo:     reportRepo,
		agentRepo:      agentRepo,
		noteRepo:       noteRepo,
		inspectionRepo: inspectionRepo,
		emailSvc:       emailSvc,
		billingSvc:     billingSvc,
		notifyMinTotal: notifyMinTotal,
	}
}

func (s *damageReportService) CreateReport(ctx context.Context, rentalID string, createdBy Actor, damages []NewDamageInput) (*domain.DamageReport, error) {
	if strings.TrimSpace(rentalID) == "" {
		return nil, domain.NewValidationError("rental_id is required",
			domain.FieldError{Field: "rental_id", Message: "must not be empty"})
	}
	if fields := validateDamageInputs(damages); len(fields) > 0 {
		return nil, domain.NewValidationError("invalid damage items", fields...)
	}

	// At most one report per rental may be in draft or submitted
	existing, err := s.reportRepo.FindInFlightByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError(
			fmt.Sprintf("rental %s already has an in-flight damage report", rentalID), existing.ID)
	}

	now := time.Now()
	rpt := &domain.DamageReport{
		ID:                uuid.New().String(),
		RentalID:          rentalID,
		Damages:           buildItems(damages, createdBy, now),
		Status:            domain.ReportStatusDraft,
		CreatedBy:         createdBy.ID,
		CreatedAt:         now,
		AllowResubmission: true,
		Version:           1,
		UpdatedAt:         now,
	}
	rpt.RecomputeTotal()

	if err := s.reportRepo.Create(ctx, rpt); err != nil {
		return nil, err
	}
	return rpt, nil
}

func (s *damageReportService) GetReport(ctx context.Context, id string) (*domain.DamageReport, error) {
	return s.reportRepo.GetByID(ctx, id)
}

func (s *damageReportService) ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.DamageReport, int32, error) {
	return s.reportRepo.List(ctx, filter)
}

// UpdateDraft replaces the item list of a draft report. Replacement items
// are attributed to the editing actor.
func (s *damageReportService) UpdateDraft(ctx context.Context, id string, damages []NewDamageInput, actor Actor) (*domain.DamageReport, error) {
	rpt, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rpt.Status != domain.ReportStatusDraft {
		return nil, domain.NewInvalidStateError(string(rpt.Status), "edit")
	}
	if fields := validateDamageInputs(damages); len(fields) > 0 {
		return nil, domain.NewValidationError("invalid damage items", fields...)
	}

	rpt.Damages = buildItems(damages, actor, time.Now())
	rpt.RecomputeTotal()
	expected := rpt.Version
	rpt.Version++
	if err := s.reportRepo.Update(ctx, rpt, expected); err != nil {
		return nil, mapSaveError(err, id)
	}
	return rpt, nil
}

// DeleteDraft removes a report. Deletion is restricted to draft status;
// anything past draft is kept forever.
func (s *damageReportService) DeleteDraft(ctx context.Context, id string) error {
	rpt, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rpt.Status != domain.ReportStatusDraft {
		return domain.NewInvalidStateError(string(rpt.Status), "delete")
	}
	return s.reportRepo.Delete(ctx, id)
}

func (s *damageReportService) Submit(ctx context.Context, id string, submittedBy Actor, notes string) (*domain.DamageReport, error) {
	rpt, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rpt.Status != domain.ReportStatusDraft {
		return nil, domain.NewInvalidStateError(string(rpt.Status), "submit")
	}

	if len(rpt.Damages) == 0 {
		return nil, domain.NewValidationError("report has no damage items",
			domain.FieldError{Field: "damages", Message: "at least one damage item is required"})
	}
	var fields []domain.FieldError
	for i, d := range rpt.Damages {
		if strings.TrimSpace(d.ItemName) == "" {
			fields = append(fields, domain.FieldError{Field: fmt.Sprintf("damages[%d].item_name", i), Message: "must not be empty"})
		}
		if strings.TrimSpace(d.Description) == "" {
			fields = append(fields, domain.FieldError{Field: fmt.Sprintf("damages[%d].description", i), Message: "must not be empty"})
		}
		if strings.TrimSpace(d.ReportedBy) == "" {
			fields = append(fields, domain.FieldError{Field: fmt.Sprintf("damages[%d].reported_by", i), Message: "must not be empty"})
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("report has incomplete damage items", fields...)
	}

	now := time.Now()
	rpt.Status = domain.ReportStatusSubmitted
	rpt.SubmittedAt = &now
	rpt.SubmissionNotes = notes
	expected := rpt.Version
	rpt.Version++
	if err := s.reportRepo.Update(ctx, rpt, expected); err != nil {
		return nil, mapSaveError(err, id)
	}

	s.notifyManagers(ctx, rpt)
	return rpt, nil
}

func (s *damageReportService) Approve(ctx context.Context, id string, approvedBy Actor, input ApproveInput) (*domain.DamageReport, error) {
	rpt, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rpt.Status != domain.ReportStatusSubmitted {
		return nil, domain.NewInvalidStateError(string(rpt.Status), "approve")
	}
	if rpt.CreatedBy == approvedBy.ID {
		return nil, domain.NewAuthorizationError("a report cannot be approved by its own creator")
	}
	if err := validateAdjustments(rpt, input.Adjustments); err != nil {
		return nil, err
	}
	if input.PartialApproval {
		for _, damageID := range input.ApprovedDamages {
			if rpt.FindDamage(damageID) == nil {
				return nil, domain.NewValidationError("unknown damage id in approved_damages",
					domain.FieldError{Field: "approved_damages", Message: damageID})
			}
		}
	}

	// Adjustments are applied before the partial-approval filter, in the
	// order given, each consuming the pre-adjustment stored cost exactly once.
	for _, adj := range input.Adjustments {
		item := rpt.FindDamage(adj.DamageID)
		oldCost := item.RepairCost
		item.OriginalCost = &oldCost
		item.AdjustmentReason = adj.Reason
		item.RepairCost = adj.NewCost
		rpt.TotalCost = rpt.TotalCost - oldCost + adj.NewCost
	}

	if input.PartialApproval {
		approvedSet := make(map[string]bool, len(input.ApprovedDamages))
		for _, damageID := range input.ApprovedDamages {
			approvedSet[damageID] = true
		}
		for i := range rpt.Damages {
			approved := approvedSet[rpt.Damages[i].ID]
			rpt.Damages[i].Approved = &approved
		}
		rpt.RecomputeTotal()
	}

	now := time.Now()
	rpt.Status = domain.ReportStatusApproved
	rpt.ApprovedAt = &now
	rpt.ApprovedBy = approvedBy.ID
	rpt.ApprovalNotes = input.Notes
	expected := rpt.Version
	rpt.Version++
	if err := s.reportRepo.Update(ctx, rpt, expected); err != nil {
		return nil, mapSaveError(err, id)
	}

	s.notifyApprovalOutcome(ctx, rpt, "Damage Report Approved",
		fmt.Sprintf("Report for rental %s was approved, total %.2f", rpt.RentalID, rpt.TotalCost))
	s.notifyCustomer(ctx, rpt)

	// Auto-billing is a best-effort follow-up; its failure never rolls back
	// the approval.
	if s.billingSvc != nil && s.billingSvc.EligibleForAutoBilling(rpt) {
		billed, err := s.billingSvc.BillReport(ctx, rpt.ID, "")
		if err != nil {
			logger.Error("Auto-billing failed", "report_id", rpt.ID, "error", err)
		} else {
			return billed, nil
		}
	}
	return rpt, nil
}

func (s *damageReportService) Reject(ctx context.Context, id string, rejectedBy Actor, input RejectInput) (*domain.DamageReport, error) {
	rpt, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rpt.Status != domain.ReportStatusSubmitted {
		return nil, domain.NewInvalidStateError(string(rpt.Status), "reject")
	}
	if rpt.CreatedBy == rejectedBy.ID {
		return nil, domain.NewAuthorizationError("a report cannot be rejected by its own creator")
	}
	if len(strings.TrimSpace(input.Reason)) < minRejectionReasonLen {
		return nil, domain.NewValidationError("rejection reason is too short",
			domain.FieldError{Field: "reason", Message: fmt.Sprintf("must be at least %d characters", minRejectionReasonLen)})
	}
	if !domain.ValidRejectionCategory(input.Category) {
		return nil, domain.NewValidationError("unknown rejection category",
			domain.FieldError{Field: "category", Message: string(input.Category)})
	}

	allowResubmission := true
	if input.AllowResubmission != nil {
		allowResubmission = *input.AllowResubmission
	}

	now := time.Now()
	rpt.Status = domain.ReportStatusRejected
	rpt.RejectedAt = &now
	rpt.RejectedBy = rejectedBy.ID
	rpt.RejectionReason = input.Reason
	rpt.RejectionCategory = input.Category
	rpt.RejectionFeedback = input.Feedback
	rpt.SuggestedActions = input.SuggestedActions
	rpt.AllowResubmission = allowResubmission
	expected := rpt.Version
	rpt.Version++
	if err := s.reportRepo.Update(ctx, rpt, expected); err != nil {
		return nil, mapSaveError(err, id)
	}

	if input.RequiresInspection {
		task := &domain.InspectionTask{
			ID:          uuid.New().String(),
			ReportID:    rpt.ID,
			RentalID:    rpt.RentalID,
			RequestedBy: rejectedBy.ID,
			Status:      domain.InspectionStatusPending,
			DueAt:       now.Add(48 * time.Hour),
			CreatedAt:   now,
		}
		if err := s.inspectionRepo.Create(ctx, task); err != nil {
			logger.Error("Failed to schedule inspection task", "report_id", rpt.ID, "error", err)
		}
	}

	s.notifyApprovalOutcome(ctx, rpt, "Damage Report Rejected",
		fmt.Sprintf("Report for rental %s was rejected: %s", rpt.RentalID, input.Reason))
	return rpt, nil
}

func (s *damageReportService) Bill(ctx context.Context, id, customerID string) (*domain.DamageReport, error) {
	return s.billingSvc.BillReport(ctx, id, customerID)
}

// CompleteInspection marks a scheduled inspection task as done once the
// equipment has been re-inspected on site
func (s *damageReportService) CompleteInspection(ctx context.Context, taskID string) error {
	if err := s.inspectionRepo.MarkCompleted(ctx, taskID); err != nil {
		return err
	}
	logger.Info("Inspection task completed", "task_id", taskID)
	return nil
}

// notifyManagers emails managers that a report awaits review. Best effort.
func (s *damageReportService) notifyManagers(ctx context.Context, rpt *domain.DamageReport) {
	managers, err := s.agentRepo.ListByRole(ctx, domain.AgentRoleManager)
	if err != nil {
		logger.Error("Failed to list managers for submit notification", "report_id", rpt.ID, "error", err)
		return
	}
	for _, m := range managers {
		if err := s.emailSvc.SendReportSubmittedNotification(ctx, m.Email, rpt.ID, rpt.RentalID, rpt.TotalCost); err != nil {
			logger.Error("Failed to send submit notification", "report_id", rpt.ID, "email", m.Email, "error", err)
		}
		note := &domain.Notification{
			ID:        uuid.New().String(),
			Recipient: m.ID,
			Title:     "Damage Report Submitted",
			Message:   fmt.Sprintf("Report for rental %s awaits review, total %.2f", rpt.RentalID, rpt.TotalCost),
			Attributes: map[string]string{
				"type":      "REPORT_SUBMITTED",
				"report_id": rpt.ID,
			},
			CreatedAt: time.Now(),
		}
		_ = s.noteRepo.Create(ctx, note)
	}
}

// notifyApprovalOutcome informs the report creator of an approve/reject
// decision. Best effort.
func (s *damageReportService) notifyApprovalOutcome(ctx context.Context, rpt *domain.DamageReport, title, message string) {
	creator, err := s.agentRepo.GetByID(ctx, rpt.CreatedBy)
	if err != nil {
		logger.Error("Failed to load report creator for notification", "report_id", rpt.ID, "error", err)
		return
	}

	switch rpt.Status {
	case domain.ReportStatusApproved:
		_ = s.emailSvc.SendReportApprovedNotification(ctx, creator.Email, rpt.ID, rpt.TotalCost, rpt.ApprovalNotes)
	case domain.ReportStatusRejected:
		_ = s.emailSvc.SendReportRejectedNotification(ctx, creator.Email, rpt.ID, rpt.RejectionReason, rpt.RejectionCategory)
	}

	note := &domain.Notification{
		ID:        uuid.New().String(),
		Recipient: creator.ID,
		Title:     title,
		Message:   message,
		Attributes: map[string]string{
			"type":      "REPORT_" + string(rpt.Status),
			"report_id": rpt.ID,
		},
		CreatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create notification", "report_id", rpt.ID, "error", err)
	}
}

// notifyCustomer emits a customer-facing charge notice when the approved
// total crosses the notification threshold
func (s *damageReportService) notifyCustomer(ctx context.Context, rpt *domain.DamageReport) {
	if rpt.TotalCost <= s.notifyMinTotal {
		return
	}
	note := &domain.Notification{
		ID:        uuid.New().String(),
		Recipient: "customer/" + rpt.RentalID,
		Title:     "Damage Charges Approved",
		Message:   fmt.Sprintf("Damage charges of %.2f were approved for your rental %s", rpt.TotalCost, rpt.RentalID),
		Attributes: map[string]string{
			"type":      "CUSTOMER_CHARGE_NOTICE",
			"report_id": rpt.ID,
		},
		CreatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create customer notice", "report_id", rpt.ID, "error", err)
	}
}

func buildItems(damages []NewDamageInput, reporter Actor, now time.Time) []domain.DamageItem {
	items := make([]domain.DamageItem, 0, len(damages))
	for _, d := range damages {
		items = append(items, domain.DamageItem{
			ID:          uuid.New().String(),
			ItemName:    d.ItemName,
			Description: d.Description,
			Severity:    d.Severity,
			Category:    d.Category,
			RepairCost:  d.RepairCost,
			Photos:      d.Photos,
			ReportedBy:  reporter.ID,
			ReportedAt:  now,
		})
	}
	return items
}

func validateDamageInputs(damages []NewDamageInput) []domain.FieldError {
	var fields []domain.FieldError
	for i, d := range damages {
		prefix := fmt.Sprintf("damages[%d]", i)
		if strings.TrimSpace(d.ItemName) == "" {
			fields = append(fields, domain.FieldError{Field: prefix + ".item_name", Message: "must not be empty"})
		}
		if len(strings.TrimSpace(d.Description)) < minDescriptionLen {
			fields = append(fields, domain.FieldError{Field: prefix + ".description", Message: fmt.Sprintf("must be at least %d characters", minDescriptionLen)})
		}
		if !domain.ValidSeverity(d.Severity) {
			fields = append(fields, domain.FieldError{Field: prefix + ".severity", Message: "unknown severity"})
		}
		if !domain.ValidDamageCategory(d.Category) {
			fields = append(fields, domain.FieldError{Field: prefix + ".category", Message: "unknown category"})
		}
		if d.RepairCost < 0 {
			fields = append(fields, domain.FieldError{Field: prefix + ".repair_cost", Message: "must not be negative"})
		}
	}
	return fields
}

// validateAdjustments rejects unknown and duplicate damage ids. Duplicates
// would double-count in the sequential cost recomputation.
func validateAdjustments(rpt *domain.DamageReport, adjustments []domain.Adjustment) error {
	seen := make(map[string]bool, len(adjustments))
	var fields []domain.FieldError
	for i, adj := range adjustments {
		prefix := fmt.Sprintf("adjustments[%d]", i)
		if rpt.FindDamage(adj.DamageID) == nil {
			fields = append(fields, domain.FieldError{Field: prefix + ".damage_id", Message: "unknown damage id " + adj.DamageID})
			continue
		}
		if seen[adj.DamageID] {
			fields = append(fields, domain.FieldError{Field: prefix + ".damage_id", Message: "duplicate damage id " + adj.DamageID})
		}
		seen[adj.DamageID] = true
		if adj.NewCost < 0 {
			fields = append(fields, domain.FieldError{Field: prefix + ".new_cost", Message: "must not be negative"})
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationError("invalid adjustments", fields...)
	}
	return nil
}

// mapSaveError converts a repository version conflict into a ConflictError
func mapSaveError(err error, reportID string) error {
	if err == repository.ErrVersionConflict {
		return domain.NewConflictError("report was modified concurrently, reload and retry", reportID)
	}
	return err
}
