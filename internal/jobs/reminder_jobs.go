package jobs

import (
	"context"
	"time"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/logger"
)

// SendInspectionReminders emails the requester of every pending inspection
// task that is past its due date
func (jr *JobRunner) SendInspectionReminders() {
	jr.runWithRecovery("SendInspectionReminders", func() {
		ctx := context.Background()

		tasks, err := jr.store.ListPendingDueBefore(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue inspections", "error", err)
			return
		}
		if len(tasks) == 0 {
			return
		}

		reminded := 0
		for _, task := range tasks {
			agent, err := jr.store.AgentRepository.GetByID(ctx, task.RequestedBy)
			if err != nil {
				logger.Warn("Inspection requester not found", "task_id", task.ID, "agent_id", task.RequestedBy)
				continue
			}
			if err := jr.services.Email.SendInspectionReminder(ctx, agent.Email, task.ReportID, task.RentalID, task.DueAt); err != nil {
				logger.Error("Failed to send inspection reminder", "task_id", task.ID, "error", err)
				continue
			}
			reminded++
		}
		logger.Info("Inspection reminders sent", "overdue", len(tasks), "reminded", reminded)
	})
}

// RemindStaleSubmittedReports emails every manager about reports that have
// been sitting in submitted longer than the configured window
func (jr *JobRunner) RemindStaleSubmittedReports() {
	jr.runWithRecovery("RemindStaleSubmittedReports", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.StaleSubmittedAfterDays)
		reports, err := jr.store.ListSubmittedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale submitted reports", "error", err)
			return
		}
		if len(reports) == 0 {
			return
		}

		managers, err := jr.store.ListByRole(ctx, domain.AgentRoleManager)
		if err != nil {
			logger.Error("Failed to list managers", "error", err)
			return
		}

		for _, rpt := range reports {
			submittedAt := rpt.CreatedAt
			if rpt.SubmittedAt != nil {
				submittedAt = *rpt.SubmittedAt
			}
			for _, m := range managers {
				if err := jr.services.Email.SendStaleReportReminder(ctx, m.Email, rpt.ID, submittedAt); err != nil {
					logger.Error("Failed to send stale-report reminder", "report_id", rpt.ID, "error", err)
				}
			}
		}
		logger.Info("Stale-report reminders sent", "reports", len(reports), "managers", len(managers))
	})
}
