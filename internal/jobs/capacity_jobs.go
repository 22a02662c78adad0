package jobs

import (
	"context"

	"eventhub-backend/internal/logger"
)

// ReconcileCapacity rejects confirmations that push an event past its
// participant limit, keeping the earliest ones.
func (jr *JobRunner) ReconcileCapacity() {
	jr.runWithRecovery("ReconcileCapacity", func(ctx context.Context) {
		demoted, err := jr.services.Participation.Reconcile(ctx)
		if err != nil {
			logger.Error("Capacity reconciliation finished with errors", "demoted", demoted, "error", err)
			return
		}
		if demoted > 0 {
			logger.Warn("Demoted over-capacity confirmations", "count", demoted)
			return
		}
		logger.Info("No over-capacity events found")
	})
}
