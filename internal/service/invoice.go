package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/pricing"
	"rentalops-backend/internal/repository"
)

type invoiceService struct {
	invoices   repository.InvoiceRepository
	rentals    repository.RentalRepository
	customers  repository.CustomerRepository
	businesses repository.BusinessRepository
	equipment  repository.EquipmentRepository
	email      EmailService
	dueDays    int
}

func NewInvoiceService(invoices repository.InvoiceRepository, rentals repository.RentalRepository, customers repository.CustomerRepository, businesses repository.BusinessRepository, equipment repository.EquipmentRepository, email EmailService, dueDays int) InvoiceService {
	if dueDays <= 0 {
		dueDays = 14
	}
	return &invoiceService{
		invoices:   invoices,
		rentals:    rentals,
		customers:  customers,
		businesses: businesses,
		equipment:  equipment,
		email:      email,
		dueDays:    dueDays,
	}
}

// CreateFromRental builds a draft invoice from the rental's price snapshot.
// One invoice per rental; amounts come from the snapshot, never from
// current equipment rates.
func (s *invoiceService) CreateFromRental(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
		}
		return nil, err
	}
	if rental.Status == domain.RentalStatusCancelled {
		return nil, fmt.Errorf("%w: cannot invoice a cancelled rental", ErrConflict)
	}

	if existing, err := s.invoices.GetByRental(ctx, rentalID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: rental already has invoice %s", ErrConflict, existing.Number)
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	equipmentName := "Equipment rental"
	if e, err := s.equipment.GetByID(ctx, rental.EquipmentID); err == nil {
		equipmentName = e.Name
	}

	lines := []domain.InvoiceLine{{
		Description: fmt.Sprintf("%s rental, %s to %s (%d days)", equipmentName, rental.StartDate, rental.EndDate, rental.TotalDays),
		Quantity:    1,
		UnitCents:   rental.SubtotalCents,
		AmountCents: rental.SubtotalCents,
	}}
	if rental.DeliveryFeeCents > 0 {
		lines = append(lines, domain.InvoiceLine{
			Description: "Delivery fee",
			Quantity:    1,
			UnitCents:   rental.DeliveryFeeCents,
			AmountCents: rental.DeliveryFeeCents,
		})
	}
	if rental.PickupFeeCents > 0 {
		lines = append(lines, domain.InvoiceLine{
			Description: "Pickup fee",
			Quantity:    1,
			UnitCents:   rental.PickupFeeCents,
			AmountCents: rental.PickupFeeCents,
		})
	}

	now := time.Now().UTC()
	inv := &domain.Invoice{
		BusinessID:    rental.BusinessID,
		RentalID:      rental.ID,
		CustomerID:    rental.CustomerID,
		IssueDate:     now.Format(pricing.DateLayout),
		DueDate:       now.AddDate(0, 0, s.dueDays).Format(pricing.DateLayout),
		Lines:         lines,
		SubtotalCents: rental.SubtotalCents + rental.DeliveryFeeCents + rental.PickupFeeCents,
		TaxCents:      rental.TaxCents,
		TotalCents:    rental.TotalCents,
		Status:        domain.InvoiceStatusDraft,
	}

	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	logger.Info("Invoice created", "invoice_id", inv.ID, "number", inv.Number, "rental_id", rental.ID, "total_cents", inv.TotalCents)
	return inv, nil
}

func (s *invoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: invoice %s", ErrNotFound, id)
	}
	return inv, err
}

func (s *invoiceService) List(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Invoice, int32, error) {
	if businessID == "" {
		return nil, 0, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	return s.invoices.ListByBusiness(ctx, businessID, status, normalizePage(page), normalizePageSize(pageSize))
}

func (s *invoiceService) Send(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceStatusDraft && inv.Status != domain.InvoiceStatusSent {
		return nil, fmt.Errorf("%w: cannot send a %s invoice", ErrConflict, inv.Status)
	}

	customer, err := s.customers.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	business, err := s.businesses.GetByID(ctx, inv.BusinessID)
	if err != nil {
		return nil, err
	}

	if err := s.email.SendInvoice(ctx, customer.Email, business.Name, inv); err != nil {
		return nil, fmt.Errorf("failed to send invoice email: %w", err)
	}

	if inv.Status == domain.InvoiceStatusDraft {
		inv.Status = domain.InvoiceStatusSent
		if err := s.invoices.Update(ctx, inv); err != nil {
			return nil, err
		}
	}
	logger.Info("Invoice sent", "invoice_id", inv.ID, "number", inv.Number, "to", customer.Email)
	return inv, nil
}

func (s *invoiceService) Void(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceStatusPaid {
		return nil, fmt.Errorf("%w: cannot void a paid invoice", ErrConflict)
	}
	if inv.Status == domain.InvoiceStatusVoid {
		return inv, nil
	}

	inv.Status = domain.InvoiceStatusVoid
	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	logger.Info("Invoice voided", "invoice_id", inv.ID, "number", inv.Number)
	return inv, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceStatusVoid {
		return nil, fmt.Errorf("%w: cannot pay a void invoice", ErrConflict)
	}
	if inv.Status == domain.InvoiceStatusPaid {
		return inv, nil
	}

	inv.Status = domain.InvoiceStatusPaid
	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	logger.Info("Invoice paid", "invoice_id", inv.ID, "number", inv.Number)
	return inv, nil
}
