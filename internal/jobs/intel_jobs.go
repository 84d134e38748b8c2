package jobs

import (
	"context"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
)

// RefreshReputationScores re-runs the web-intelligence analysis for every
// active business so scores track the outside world.
func (jr *JobRunner) RefreshReputationScores() {
	jr.runWithRecovery("RefreshReputationScores", func() {
		if !jr.config.Intel.Enabled {
			logger.Info("Web intelligence disabled, skipping reputation refresh")
			return
		}
		ctx := context.Background()

		businesses, err := jr.store.BusinessRepository.List(ctx, string(domain.BusinessStatusActive))
		if err != nil {
			logger.Error("Failed to list businesses for reputation refresh", "error", err)
			return
		}

		count := 0
		for i := range businesses {
			if _, err := jr.services.Business.Analyze(ctx, businesses[i].ID); err != nil {
				logger.Error("Failed to refresh reputation", "business_id", businesses[i].ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Refreshed reputation scores", "count", count)
	})
}
