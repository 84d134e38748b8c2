package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalops-backend/internal/domain"
)

func invoiceFixtures() (*MockInvoiceRepo, *MockRentalRepo, *MockCustomerRepo, *MockBusinessRepo, *MockEquipmentRepo, *MockEmailService, InvoiceService) {
	invoiceRepo := new(MockInvoiceRepo)
	rentalRepo := new(MockRentalRepo)
	customerRepo := new(MockCustomerRepo)
	businessRepo := new(MockBusinessRepo)
	equipmentRepo := new(MockEquipmentRepo)
	emailSvc := new(MockEmailService)
	svc := NewInvoiceService(invoiceRepo, rentalRepo, customerRepo, businessRepo, equipmentRepo, emailSvc, 14)
	return invoiceRepo, rentalRepo, customerRepo, businessRepo, equipmentRepo, emailSvc, svc
}

func TestInvoiceService_CreateFromRental(t *testing.T) {
	invoiceRepo, rentalRepo, _, _, equipmentRepo, _, svc := invoiceFixtures()
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, "r-1").Return(&domain.Rental{
		ID:               "r-1",
		BusinessID:       "biz-1",
		EquipmentID:      "eq-1",
		CustomerID:       "cust-1",
		StartDate:        "2024-06-01",
		EndDate:          "2024-06-04",
		TotalDays:        3,
		SubtotalCents:    30000,
		TaxCents:         2400,
		DeliveryFeeCents: 2500,
		TotalCents:       34900,
		Status:           domain.RentalStatusActive,
	}, nil)
	invoiceRepo.On("GetByRental", ctx, "r-1").Return(nil, sql.ErrNoRows)
	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{ID: "eq-1", Name: "Excavator"}, nil)
	invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv, err := svc.CreateFromRental(ctx, "r-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
	assert.Len(t, inv.Lines, 2) // rental line + delivery fee
	assert.Contains(t, inv.Lines[0].Description, "Excavator")
	assert.Equal(t, int64(32500), inv.SubtotalCents)
	assert.Equal(t, int64(2400), inv.TaxCents)
	assert.Equal(t, int64(34900), inv.TotalCents)
	assert.NotEmpty(t, inv.DueDate)
}

func TestInvoiceService_CreateFromRental_AlreadyInvoiced(t *testing.T) {
	invoiceRepo, rentalRepo, _, _, _, _, svc := invoiceFixtures()
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, "r-1").Return(&domain.Rental{
		ID:     "r-1",
		Status: domain.RentalStatusActive,
	}, nil)
	invoiceRepo.On("GetByRental", ctx, "r-1").Return(&domain.Invoice{ID: "inv-1", Number: "INV-2024-0001"}, nil)

	_, err := svc.CreateFromRental(ctx, "r-1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestInvoiceService_CreateFromRental_Cancelled(t *testing.T) {
	_, rentalRepo, _, _, _, _, svc := invoiceFixtures()
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, "r-1").Return(&domain.Rental{
		ID:     "r-1",
		Status: domain.RentalStatusCancelled,
	}, nil)

	_, err := svc.CreateFromRental(ctx, "r-1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestInvoiceService_Send(t *testing.T) {
	invoiceRepo, _, customerRepo, businessRepo, _, emailSvc, svc := invoiceFixtures()
	ctx := context.Background()

	inv := &domain.Invoice{
		ID:         "inv-1",
		BusinessID: "biz-1",
		CustomerID: "cust-1",
		Number:     "INV-2024-0001",
		Status:     domain.InvoiceStatusDraft,
	}
	invoiceRepo.On("GetByID", ctx, "inv-1").Return(inv, nil)
	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1", Email: "jane@example.com"}, nil)
	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1", Name: "Acme Rentals"}, nil)
	emailSvc.On("SendInvoice", ctx, "jane@example.com", "Acme Rentals", inv).Return(nil)
	invoiceRepo.On("Update", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	sent, err := svc.Send(ctx, "inv-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, sent.Status)
	emailSvc.AssertExpectations(t)
}

func TestInvoiceService_Void_Paid(t *testing.T) {
	invoiceRepo, _, _, _, _, _, svc := invoiceFixtures()
	ctx := context.Background()

	invoiceRepo.On("GetByID", ctx, "inv-1").Return(&domain.Invoice{
		ID:     "inv-1",
		Status: domain.InvoiceStatusPaid,
	}, nil)

	_, err := svc.Void(ctx, "inv-1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestInvoiceService_MarkPaid_Idempotent(t *testing.T) {
	invoiceRepo, _, _, _, _, _, svc := invoiceFixtures()
	ctx := context.Background()

	invoiceRepo.On("GetByID", ctx, "inv-1").Return(&domain.Invoice{
		ID:     "inv-1",
		Status: domain.InvoiceStatusPaid,
	}, nil)

	inv, err := svc.MarkPaid(ctx, "inv-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	invoiceRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}
