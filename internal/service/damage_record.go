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

type damageRecordService struct {
	recordRepo repository.DamageRecordRepository
	photoSvc   PhotoService
}

func NewDamageRecordService(recordRepo repository.DamageRecordRepository, photoSvc PhotoService) DamageRecordService {
	return &damageRecordService{recordRepo: recordRepo, photoSvc: photoSvc}
}

// CreateRecord registers a standalone damage record. Status always starts at
// PENDING regardless of input. Critical-severity damage requires photographic
// evidence at creation time.
func (s *damageRecordService) CreateRecord(ctx context.Context, reportedBy Actor, input NewDamageRecordInput) (*domain.DamageRecord, error) {
	var fields []domain.FieldError
	if strings.TrimSpace(input.RentalID) == "" {
		fields = append(fields, domain.FieldError{Field: "rental_id", Message: "must not be empty"})
	}
	if strings.TrimSpace(input.ItemName) == "" {
		fields = append(fields, domain.FieldError{Field: "item_name", Message: "must not be empty"})
	}
	if len(strings.TrimSpace(input.Description)) < minDescriptionLen {
		fields = append(fields, domain.FieldError{Field: "description", Message: fmt.Sprintf("must be at least %d characters", minDescriptionLen)})
	}
	if !domain.ValidSeverity(input.Severity) {
		fields = append(fields, domain.FieldError{Field: "severity", Message: "unknown severity"})
	}
	if !domain.ValidDamageCategory(input.Category) {
		fields = append(fields, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if input.RepairCost < 0 {
		fields = append(fields, domain.FieldError{Field: "repair_cost", Message: "must not be negative"})
	}
	if input.Severity == domain.SeverityCritical && len(input.Photos) == 0 {
		fields = append(fields, domain.FieldError{Field: "photos", Message: "critical damage requires at least one photo"})
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid damage record", fields...)
	}

	now := time.Now()
	rec := &domain.DamageRecord{
		ID:          uuid.New().String(),
		RentalID:    input.RentalID,
		ItemName:    input.ItemName,
		Description: input.Description,
		Severity:    input.Severity,
		Category:    input.Category,
		RepairCost:  input.RepairCost,
		Photos:      input.Photos,
		Status:      domain.RecordStatusPending,
		ReportedBy:  reportedBy.ID,
		ReportedAt:  now,
		UpdatedAt:   now,
	}
	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *damageRecordService) GetRecord(ctx context.Context, id string) (*DamageRecordDetail, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	all, err := s.recordRepo.ListByRental(ctx, rec.RentalID)
	if err != nil {
		return nil, err
	}
	related := make([]domain.DamageRecord, 0, len(all))
	for _, other := range all {
		if other.ID != rec.ID {
			related = append(related, other)
		}
	}

	summary, err := s.recordRepo.SummarizeByRental(ctx, rec.RentalID)
	if err != nil {
		return nil, err
	}
	return &DamageRecordDetail{Record: rec, Related: related, Summary: summary}, nil
}

func (s *damageRecordService) ListRecords(ctx context.Context, rentalID string, status domain.RecordStatus, page, pageSize int32) ([]domain.DamageRecord, int32, error) {
	return s.recordRepo.List(ctx, rentalID, status, page, pageSize)
}

// UpdateRecord applies a partial update. Repaired records are frozen.
// On approved records only description and photos are open to regular
// agents; cost, severity, category, name and status need an elevated role.
func (s *damageRecordService) UpdateRecord(ctx context.Context, actor Actor, id string, input UpdateDamageRecordInput) (*domain.DamageRecord, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == domain.RecordStatusRepaired {
		return nil, domain.NewInvalidStateError(string(rec.Status), "edit")
	}

	restricted := input.ItemName != nil || input.Severity != nil || input.Category != nil ||
		input.RepairCost != nil || input.Status != nil
	if rec.Status == domain.RecordStatusApproved && restricted && !actor.Elevated() {
		return nil, domain.NewAuthorizationError("editing an approved damage record requires an elevated role")
	}

	if input.ItemName != nil {
		if strings.TrimSpace(*input.ItemName) == "" {
			return nil, domain.NewValidationError("item_name must not be empty",
				domain.FieldError{Field: "item_name", Message: "must not be empty"})
		}
		rec.ItemName = *input.ItemName
	}
	if input.Description != nil {
		if len(strings.TrimSpace(*input.Description)) < minDescriptionLen {
			return nil, domain.NewValidationError("description is too short",
				domain.FieldError{Field: "description", Message: fmt.Sprintf("must be at least %d characters", minDescriptionLen)})
		}
		rec.Description = *input.Description
	}
	if input.Severity != nil {
		if !domain.ValidSeverity(*input.Severity) {
			return nil, domain.NewValidationError("unknown severity",
				domain.FieldError{Field: "severity", Message: string(*input.Severity)})
		}
		rec.Severity = *input.Severity
	}
	if input.Category != nil {
		if !domain.ValidDamageCategory(*input.Category) {
			return nil, domain.NewValidationError("unknown category",
				domain.FieldError{Field: "category", Message: string(*input.Category)})
		}
		rec.Category = *input.Category
	}
	if input.RepairCost != nil {
		if *input.RepairCost < 0 {
			return nil, domain.NewValidationError("repair_cost must not be negative",
				domain.FieldError{Field: "repair_cost", Message: "must not be negative"})
		}
		rec.RepairCost = *input.RepairCost
	}
	if input.Photos != nil {
		rec.Photos = input.Photos
	}
	if input.Status != nil {
		if err := validateRecordTransition(rec.Status, *input.Status); err != nil {
			return nil, err
		}
		rec.Status = *input.Status
	}

	if err := s.recordRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecord drops a pending record. The photo files are removed from
// storage before the row goes away; a file that fails to delete blocks the
// record deletion so no orphan rows reference live files.
func (s *damageRecordService) DeleteRecord(ctx context.Context, id string) error {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status == domain.RecordStatusApproved || rec.Status == domain.RecordStatusRepaired {
		return domain.NewConflictError(
			fmt.Sprintf("damage record in status %s cannot be deleted", rec.Status), rec.ID)
	}

	for _, photoURL := range rec.Photos {
		if err := s.photoSvc.DeleteByURL(ctx, photoURL); err != nil {
			logger.Error("Failed to delete photo for damage record", "record_id", rec.ID, "url", photoURL, "error", err)
			return err
		}
	}
	return s.recordRepo.Delete(ctx, id)
}

func validateRecordTransition(from, to domain.RecordStatus) error {
	switch {
	case from == to:
		return nil
	case from == domain.RecordStatusPending && to == domain.RecordStatusApproved:
		return nil
	case from == domain.RecordStatusApproved && to == domain.RecordStatusRepaired:
		return nil
	}
	return domain.NewInvalidStateError(string(from), "transition to "+string(to))
}
