package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/payments"
)

// MockInvoiceService
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateFromRental(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) List(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Invoice, int32, error) {
	args := m.Called(ctx, businessID, status, page, pageSize)
	return args.Get(0).([]domain.Invoice), args.Get(1).(int32), args.Error(2)
}
func (m *MockInvoiceService) Send(ctx context.Context, id string) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) Void(ctx context.Context, id string) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) MarkPaid(ctx context.Context, id string) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func paymentFixtures() (*MockPaymentRepo, *MockInvoiceService, *MockCustomerRepo, *MockBusinessRepo, *MockGateway, *MockEmailService, PaymentService) {
	paymentRepo := new(MockPaymentRepo)
	invoiceSvc := new(MockInvoiceService)
	customerRepo := new(MockCustomerRepo)
	businessRepo := new(MockBusinessRepo)
	gateway := new(MockGateway)
	emailSvc := new(MockEmailService)
	svc := NewPaymentService(paymentRepo, invoiceSvc, customerRepo, businessRepo, gateway, emailSvc, "usd")
	return paymentRepo, invoiceSvc, customerRepo, businessRepo, gateway, emailSvc, svc
}

func TestPaymentService_CreateIntent(t *testing.T) {
	paymentRepo, invoiceSvc, _, _, gateway, _, svc := paymentFixtures()
	ctx := context.Background()

	invoiceSvc.On("Get", ctx, "inv-1").Return(&domain.Invoice{
		ID:         "inv-1",
		BusinessID: "biz-1",
		CustomerID: "cust-1",
		TotalCents: 34900,
		Status:     domain.InvoiceStatusSent,
	}, nil)
	gateway.On("CreateIntent", ctx, int64(34900), "usd", map[string]string{
		"invoice_id":  "inv-1",
		"business_id": "biz-1",
	}).Return(&payments.Intent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret",
		AmountCents:  34900,
		Currency:     "usd",
		Status:       payments.IntentStatusRequiresPayment,
	}, nil)
	paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

	p, secret, err := svc.CreateIntent(ctx, "inv-1")
	assert.NoError(t, err)
	assert.Equal(t, "pi_123", p.IntentID)
	assert.Equal(t, "pi_123_secret", secret)
	assert.Equal(t, domain.PaymentStatusPending, p.Status)
}

func TestPaymentService_CreateIntent_PaidInvoice(t *testing.T) {
	_, invoiceSvc, _, _, gateway, _, svc := paymentFixtures()
	ctx := context.Background()

	invoiceSvc.On("Get", ctx, "inv-1").Return(&domain.Invoice{
		ID:     "inv-1",
		Status: domain.InvoiceStatusPaid,
	}, nil)

	_, _, err := svc.CreateIntent(ctx, "inv-1")
	assert.ErrorIs(t, err, ErrConflict)
	gateway.AssertNotCalled(t, "CreateIntent", ctx, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_HandleWebhook_Succeeded(t *testing.T) {
	paymentRepo, invoiceSvc, customerRepo, businessRepo, _, emailSvc, svc := paymentFixtures()
	ctx := context.Background()

	paymentRepo.On("GetByIntentID", ctx, "pi_123").Return(&domain.Payment{
		ID:         "pay-1",
		BusinessID: "biz-1",
		InvoiceID:  "inv-1",
		CustomerID: "cust-1",
		IntentID:   "pi_123",
		Status:     domain.PaymentStatusPending,
	}, nil)
	paymentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
	invoiceSvc.On("MarkPaid", ctx, "inv-1").Return(&domain.Invoice{ID: "inv-1", Status: domain.InvoiceStatusPaid}, nil)
	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1", Email: "jane@example.com"}, nil)
	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1", Name: "Acme Rentals"}, nil)
	emailSvc.On("SendPaymentReceipt", ctx, "jane@example.com", "Acme Rentals", mock.AnythingOfType("*domain.Payment")).Return(nil)

	body := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_123"}}}`)
	err := svc.HandleWebhook(ctx, body)
	assert.NoError(t, err)
	invoiceSvc.AssertCalled(t, "MarkPaid", ctx, "inv-1")
}

func TestPaymentService_HandleWebhook_Failed(t *testing.T) {
	paymentRepo, invoiceSvc, _, _, _, _, svc := paymentFixtures()
	ctx := context.Background()

	payment := &domain.Payment{
		ID:       "pay-1",
		IntentID: "pi_123",
		Status:   domain.PaymentStatusPending,
	}
	paymentRepo.On("GetByIntentID", ctx, "pi_123").Return(payment, nil)
	paymentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

	body := []byte(`{"type":"payment_intent.payment_failed","data":{"object":{"id":"pi_123","last_payment_error":{"message":"card declined"}}}}`)
	err := svc.HandleWebhook(ctx, body)
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "card declined", payment.FailureReason)
	invoiceSvc.AssertNotCalled(t, "MarkPaid", ctx, mock.Anything)
}

func TestPaymentService_HandleWebhook_DuplicateDelivery(t *testing.T) {
	paymentRepo, invoiceSvc, _, _, _, _, svc := paymentFixtures()
	ctx := context.Background()

	paymentRepo.On("GetByIntentID", ctx, "pi_123").Return(&domain.Payment{
		ID:       "pay-1",
		IntentID: "pi_123",
		Status:   domain.PaymentStatusSucceeded,
	}, nil)

	body := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_123"}}}`)
	err := svc.HandleWebhook(ctx, body)
	assert.NoError(t, err)
	paymentRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	invoiceSvc.AssertNotCalled(t, "MarkPaid", ctx, mock.Anything)
}

func TestPaymentService_HandleWebhook_UnknownEventIgnored(t *testing.T) {
	paymentRepo, _, _, _, _, _, svc := paymentFixtures()

	body := []byte(`{"type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`)
	err := svc.HandleWebhook(context.Background(), body)
	assert.NoError(t, err)
	paymentRepo.AssertNotCalled(t, "GetByIntentID", mock.Anything, mock.Anything)
}

func TestPaymentService_HandleWebhook_BadPayload(t *testing.T) {
	_, _, _, _, _, _, svc := paymentFixtures()

	err := svc.HandleWebhook(context.Background(), []byte(`{"type":""}`))
	assert.ErrorIs(t, err, ErrValidation)
}
