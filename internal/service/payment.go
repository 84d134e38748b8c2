package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/payments"
	"rentalops-backend/internal/repository"
)

type paymentService struct {
	paymentsRepo repository.PaymentRepository
	invoices     InvoiceService
	customers    repository.CustomerRepository
	businesses   repository.BusinessRepository
	gateway      payments.Gateway
	email        EmailService
	currency     string
}

func NewPaymentService(paymentsRepo repository.PaymentRepository, invoices InvoiceService, customers repository.CustomerRepository, businesses repository.BusinessRepository, gateway payments.Gateway, email EmailService, currency string) PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &paymentService{
		paymentsRepo: paymentsRepo,
		invoices:     invoices,
		customers:    customers,
		businesses:   businesses,
		gateway:      gateway,
		email:        email,
		currency:     currency,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, invoiceID string) (*domain.Payment, string, error) {
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv.Status == domain.InvoiceStatusPaid {
		return nil, "", fmt.Errorf("%w: invoice is already paid", ErrConflict)
	}
	if inv.Status == domain.InvoiceStatusVoid {
		return nil, "", fmt.Errorf("%w: invoice is void", ErrConflict)
	}

	intent, err := s.gateway.CreateIntent(ctx, inv.TotalCents, s.currency, map[string]string{
		"invoice_id":  inv.ID,
		"business_id": inv.BusinessID,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	p := &domain.Payment{
		BusinessID:  inv.BusinessID,
		InvoiceID:   inv.ID,
		CustomerID:  inv.CustomerID,
		AmountCents: inv.TotalCents,
		Currency:    s.currency,
		IntentID:    intent.ID,
		Status:      domain.PaymentStatusPending,
	}
	if err := s.paymentsRepo.Create(ctx, p); err != nil {
		return nil, "", err
	}

	logger.Info("Payment intent created", "payment_id", p.ID, "invoice_id", inv.ID, "intent_id", intent.ID, "amount_cents", p.AmountCents)
	return p, intent.ClientSecret, nil
}

// HandleWebhook advances the payment matching the event's intent. A
// succeeded event also marks the invoice paid and emails the receipt;
// receipt failures are logged but never bounce the webhook, since the
// gateway would retry an already-applied event.
func (s *paymentService) HandleWebhook(ctx context.Context, body []byte) error {
	event, err := payments.ParseWebhook(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	switch event.Type {
	case payments.EventIntentSucceeded, payments.EventIntentFailed:
	default:
		// Unrecognized event types are acknowledged and dropped.
		logger.Debug("Ignoring webhook event", "type", event.Type)
		return nil
	}

	p, err := s.paymentsRepo.GetByIntentID(ctx, event.IntentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: no payment for intent %s", ErrNotFound, event.IntentID)
		}
		return err
	}
	if p.Status != domain.PaymentStatusPending {
		// Webhooks can be delivered more than once; terminal payments
		// are left alone.
		return nil
	}

	if event.Type == payments.EventIntentFailed {
		p.Status = domain.PaymentStatusFailed
		p.FailureReason = event.FailureReason
		if err := s.paymentsRepo.Update(ctx, p); err != nil {
			return err
		}
		logger.Info("Payment failed", "payment_id", p.ID, "intent_id", p.IntentID, "reason", p.FailureReason)
		return nil
	}

	p.Status = domain.PaymentStatusSucceeded
	if err := s.paymentsRepo.Update(ctx, p); err != nil {
		return err
	}
	if _, err := s.invoices.MarkPaid(ctx, p.InvoiceID); err != nil {
		return err
	}
	logger.Info("Payment succeeded", "payment_id", p.ID, "invoice_id", p.InvoiceID, "amount_cents", p.AmountCents)

	s.sendReceipt(ctx, p)
	return nil
}

func (s *paymentService) sendReceipt(ctx context.Context, p *domain.Payment) {
	customer, err := s.customers.GetByID(ctx, p.CustomerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load customer for receipt", "payment_id", p.ID, "error", err)
		return
	}
	business, err := s.businesses.GetByID(ctx, p.BusinessID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load business for receipt", "payment_id", p.ID, "error", err)
		return
	}
	if err := s.email.SendPaymentReceipt(ctx, customer.Email, business.Name, p); err != nil {
		logger.ErrorContext(ctx, "Failed to send payment receipt", "payment_id", p.ID, "error", err)
	}
}

func (s *paymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	p, err := s.paymentsRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, id)
	}
	return p, err
}

func (s *paymentService) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: invoice_id is required", ErrValidation)
	}
	return s.paymentsRepo.ListByInvoice(ctx, invoiceID)
}

func (s *paymentService) List(ctx context.Context, businessID string, page, pageSize int32) ([]domain.Payment, int32, error) {
	if businessID == "" {
		return nil, 0, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	return s.paymentsRepo.ListByBusiness(ctx, businessID, normalizePage(page), normalizePageSize(pageSize))
}
