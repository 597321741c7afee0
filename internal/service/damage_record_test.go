package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prorentals-backend/internal/domain"
)

func pendingRecord() *domain.DamageRecord {
	now := time.Now()
	return &domain.DamageRecord{
		ID:          "rec-1",
		RentalID:    "rental-1",
		ItemName:    "Ladder",
		Description: "Second rung is bent out of shape",
		Severity:    domain.SeverityMedium,
		Category:    domain.CategoryStructural,
		RepairCost:  80,
		Photos:      []string{"http://localhost:8080/uploads/rentals/rental-1/a.jpg"},
		Status:      domain.RecordStatusPending,
		ReportedBy:  "agent-1",
		ReportedAt:  now,
		UpdatedAt:   now,
	}
}

func TestDamageRecordService_CreateRecord(t *testing.T) {
	ctx := context.Background()
	actor := Actor{ID: "agent-1", Role: domain.AgentRoleAgent}

	t.Run("Success starts at pending regardless of input", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := NewDamageRecordService(recordRepo, new(MockPhotoService))
		recordRepo.On("Create", ctx, mock.AnythingOfType("*domain.DamageRecord")).Return(nil)

		rec, err := svc.CreateRecord(ctx, actor, NewDamageRecordInput{
			RentalID:    "rental-1",
			ItemName:    "Ladder",
			Description: "Second rung is bent out of shape",
			Severity:    domain.SeverityMedium,
			Category:    domain.CategoryStructural,
			RepairCost:  80,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RecordStatusPending, rec.Status)
		assert.Equal(t, "agent-1", rec.ReportedBy)
	})

	t.Run("Critical severity requires a photo", func(t *testing.T) {
		svc := NewDamageRecordService(new(MockRecordRepo), new(MockPhotoService))

		rec, err := svc.CreateRecord(ctx, actor, NewDamageRecordInput{
			RentalID:    "rental-1",
			ItemName:    "Generator",
			Description: "Engine block cracked, leaking oil everywhere",
			Severity:    domain.SeverityCritical,
			Category:    domain.CategoryFunctional,
			RepairCost:  2000,
		})
		assert.Nil(t, rec)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "photos", verr.Fields[0].Field)
	})
}

func TestDamageRecordService_UpdateRecord(t *testing.T) {
	ctx := context.Background()
	agent := Actor{ID: "agent-1", Role: domain.AgentRoleAgent}
	manager := Actor{ID: "mgr-1", Role: domain.AgentRoleManager}

	t.Run("Repaired records are frozen", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := NewDamageRecordService(recordRepo, new(MockPhotoService))
		rec := pendingRecord()
		rec.Status = domain.RecordStatusRepaired
		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)

		name := "New name"
		res, err := svc.UpdateRecord(ctx, manager, "rec-1", UpdateDamageRecordInput{ItemName: &name})
		assert.Nil(t, res)
		var serr *domain.InvalidStateError
		assert.ErrorAs(t, err, &serr)
	})

	t.Run("Restricted fields on approved records need an elevated role", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := NewDamageRecordService(recordRepo, new(MockPhotoService))
		rec := pendingRecord()
		rec.Status = domain.RecordStatusApproved
		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)

		cost := 120.0
		res, err := svc.UpdateRecord(ctx, agent, "rec-1", UpdateDamageRecordInput{RepairCost: &cost})
		assert.Nil(t, res)
		var aerr *domain.AuthorizationError
		assert.ErrorAs(t, err, &aerr)
	})

	t.Run("Managers may edit restricted fields on approved records", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := NewDamageRecordService(recordRepo, new(MockPhotoService))
		rec := pendingRecord()
		rec.Status = domain.RecordStatusApproved
		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)
		recordRepo.On("Update", ctx, mock.AnythingOfType("*domain.DamageRecord")).Return(nil)

		cost := 120.0
		res, err := svc.UpdateRecord(ctx, manager, "rec-1", UpdateDamageRecordInput{RepairCost: &cost})
		assert.NoError(t, err)
		assert.InDelta(t, 120, res.RepairCost, 0.01)
	})

	t.Run("Agents may still edit description on approved records", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := NewDamageRecordService(recordRepo, new(MockPhotoService))
		rec := pendingRecord()
		rec.Status = domain.RecordStatusApproved
		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)
		recordRepo.On("Update", ctx, mock.AnythingOfType("*domain.DamageRecord")).Return(nil)

		desc := "Updated description with enough detail"
		res, err := svc.UpdateRecord(ctx, agent, "rec-1", UpdateDamageRecordInput{Description: &desc})
		assert.NoError(t, err)
		assert.Equal(t, desc, res.Description)
	})

	t.Run("Status can only move forward", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := NewDamageRecordService(recordRepo, new(MockPhotoService))
		rec := pendingRecord()
		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)

		repaired := domain.RecordStatusRepaired
		res, err := svc.UpdateRecord(ctx, manager, "rec-1", UpdateDamageRecordInput{Status: &repaired})
		assert.Nil(t, res)
		var serr *domain.InvalidStateError
		assert.ErrorAs(t, err, &serr)
	})
}

func TestDamageRecordService_DeleteRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending record deletes its photos first", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		photoSvc := new(MockPhotoService)
		svc := NewDamageRecordService(recordRepo, photoSvc)
		rec := pendingRecord()
		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)
		photoSvc.On("DeleteByURL", ctx, rec.Photos[0]).Return(nil)
		recordRepo.On("Delete", ctx, "rec-1").Return(nil)

		assert.NoError(t, svc.DeleteRecord(ctx, "rec-1"))
		photoSvc.AssertCalled(t, "DeleteByURL", ctx, rec.Photos[0])
	})

	t.Run("Approved record cannot be deleted", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := NewDamageRecordService(recordRepo, new(MockPhotoService))
		rec := pendingRecord()
		rec.Status = domain.RecordStatusApproved
		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)

		err := svc.DeleteRecord(ctx, "rec-1")
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("Photo deletion failure blocks the record deletion", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		photoSvc := new(MockPhotoService)
		svc := NewDamageRecordService(recordRepo, photoSvc)
		rec := pendingRecord()
		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)
		photoSvc.On("DeleteByURL", ctx, rec.Photos[0]).Return(assert.AnError)

		err := svc.DeleteRecord(ctx, "rec-1")
		assert.Error(t, err)
		recordRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestDamageRecordService_GetRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("Detail includes related records and the rental summary", func(t *testing.T) {
		recordRepo := new(MockRecordRepo)
		svc := NewDamageRecordService(recordRepo, new(MockPhotoService))
		rec := pendingRecord()
		other := pendingRecord()
		other.ID = "rec-2"
		summary := &domain.RentalDamageSummary{RentalID: "rental-1", RecordCount: 2, TotalCost: 160, PendingCost: 160}

		recordRepo.On("GetByID", ctx, "rec-1").Return(rec, nil)
		recordRepo.On("ListByRental", ctx, "rental-1").Return([]domain.DamageRecord{*rec, *other}, nil)
		recordRepo.On("SummarizeByRental", ctx, "rental-1").Return(summary, nil)

		detail, err := svc.GetRecord(ctx, "rec-1")
		assert.NoError(t, err)
		assert.Equal(t, "rec-1", detail.Record.ID)
		assert.Len(t, detail.Related, 1)
		assert.Equal(t, "rec-2", detail.Related[0].ID)
		assert.Equal(t, int32(2), detail.Summary.RecordCount)
	})
}

func TestActor_Elevated(t *testing.T) {
	assert.False(t, Actor{Role: domain.AgentRoleAgent}.Elevated())
	assert.True(t, Actor{Role: domain.AgentRoleManager}.Elevated())
	assert.True(t, Actor{Role: domain.AgentRoleAdmin}.Elevated())
}
