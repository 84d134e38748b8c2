package jobs

import (
	"context"
	"time"

	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/pricing"
)

// SendInvoiceReminders emails customers whose sent invoices are past due by
// more than the configured grace period.
func (jr *JobRunner) SendInvoiceReminders() {
	jr.runWithRecovery("SendInvoiceReminders", func() {
		ctx := context.Background()

		grace := jr.config.Billing.ReminderGraceDays
		asOf := time.Now().UTC().AddDate(0, 0, -grace).Format(pricing.DateLayout)

		overdue, err := jr.store.InvoiceRepository.ListOverdue(ctx, asOf)
		if err != nil {
			logger.Error("Failed to list overdue invoices", "error", err)
			return
		}

		count := 0
		for i := range overdue {
			inv := &overdue[i]
			customer, err := jr.store.CustomerRepository.GetByID(ctx, inv.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder", "invoice_id", inv.ID, "error", err)
				continue
			}
			business, err := jr.store.BusinessRepository.GetByID(ctx, inv.BusinessID)
			if err != nil {
				logger.Error("Failed to load business for reminder", "invoice_id", inv.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendInvoiceReminder(ctx, customer.Email, business.Name, inv); err != nil {
				logger.Error("Failed to send invoice reminder", "invoice_id", inv.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Sent invoice reminders", "count", count, "overdue", len(overdue))
	})
}
