package jobs

import (
	"context"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/pricing"
)

// ActivateDueRentals moves reserved rentals whose start date has arrived
// into active status.
func (jr *JobRunner) ActivateDueRentals() {
	jr.runWithRecovery("ActivateDueRentals", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format(pricing.DateLayout)

		query := `SELECT id FROM rentals WHERE status = 'reserved' AND start_date <= $1`
		ids, err := jr.collectIDs(ctx, query, today)
		if err != nil {
			logger.Error("Failed to find due rentals", "error", err)
			return
		}

		count := 0
		for _, id := range ids {
			if _, err := jr.services.Rental.ChangeStatus(ctx, id, domain.RentalStatusActive); err != nil {
				logger.Error("Failed to activate rental", "rental_id", id, "error", err)
				continue
			}
			count++
		}
		logger.Info("Activated due rentals", "count", count)
	})
}

// CompleteOverdueRentals completes active rentals that are past their end
// date. The status change releases the equipment back to the pool.
func (jr *JobRunner) CompleteOverdueRentals() {
	jr.runWithRecovery("CompleteOverdueRentals", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format(pricing.DateLayout)

		query := `SELECT id FROM rentals WHERE status = 'active' AND end_date < $1`
		ids, err := jr.collectIDs(ctx, query, today)
		if err != nil {
			logger.Error("Failed to find overdue rentals", "error", err)
			return
		}

		count := 0
		for _, id := range ids {
			if _, err := jr.services.Rental.ChangeStatus(ctx, id, domain.RentalStatusCompleted); err != nil {
				logger.Error("Failed to complete rental", "rental_id", id, "error", err)
				continue
			}
			count++
		}
		logger.Info("Completed overdue rentals", "count", count)
	})
}

func (jr *JobRunner) collectIDs(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := jr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			logger.Error("Failed to scan rental id", "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
