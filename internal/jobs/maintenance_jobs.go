package jobs

import (
	"context"
	"time"

	"prorentals-backend/internal/logger"
)

// PurgeOldWebhookEvents drops recorded gateway events past the retention
// window
func (jr *JobRunner) PurgeOldWebhookEvents() {
	jr.runWithRecovery("PurgeOldWebhookEvents", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.WebhookRetentionDays)
		deleted, err := jr.store.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge webhook events", "error", err)
			return
		}
		logger.Info("Webhook events purged", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	})
}
