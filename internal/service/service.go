package service

import (
	"context"
	"errors"

	"rentalops-backend/internal/domain"
)

// Sentinel errors the HTTP layer maps to status codes. Services wrap them
// with fmt.Errorf("%w: ...") so the message stays user-presentable.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid request")
	ErrConflict   = errors.New("conflict")
)

// BusinessPatch carries partial updates; nil fields are left untouched.
type BusinessPatch struct {
	Name       *string              `json:"name"`
	Type       *domain.BusinessType `json:"type"`
	Email      *string              `json:"email"`
	Phone      *string              `json:"phone"`
	Website    *string              `json:"website"`
	Address    *string              `json:"address"`
	Branding   *domain.Branding     `json:"branding"`
	TaxRateBps *int32               `json:"tax_rate_bps"`
	Status     *domain.BusinessStatus `json:"status"`
}

type BusinessService interface {
	Create(ctx context.Context, b *domain.Business) (*domain.Business, error)
	Get(ctx context.Context, id string) (*domain.Business, error)
	List(ctx context.Context, status string) ([]domain.Business, error)
	Update(ctx context.Context, id string, patch BusinessPatch) (*domain.Business, error)
	Delete(ctx context.Context, id string) error
	// Analyze runs the web-intelligence analysis and stores the snapshot
	// and recomputed reputation score on the business.
	Analyze(ctx context.Context, id string) (*domain.Business, error)
}

type EquipmentPatch struct {
	Name             *string                    `json:"name"`
	Category         *string                    `json:"category"`
	Description      *string                    `json:"description"`
	DailyRateCents   *int64                     `json:"daily_rate_cents"`
	WeeklyRateCents  *int64                     `json:"weekly_rate_cents"`
	MonthlyRateCents *int64                     `json:"monthly_rate_cents"`
	Status           *domain.EquipmentStatus    `json:"status"`
	Condition        *domain.EquipmentCondition `json:"condition"`
	Specifications   *[]domain.Specification    `json:"specifications"`
}

type EquipmentService interface {
	Add(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error)
	Get(ctx context.Context, id string) (*domain.Equipment, error)
	Update(ctx context.Context, id string, patch EquipmentPatch) (*domain.Equipment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, businessID, category, status string, page, pageSize int32) ([]domain.Equipment, int32, error)
	OpenMaintenance(ctx context.Context, m *domain.MaintenanceRecord) (*domain.MaintenanceRecord, error)
	CloseMaintenance(ctx context.Context, recordID string) (*domain.MaintenanceRecord, error)
	ListMaintenance(ctx context.Context, equipmentID string) ([]domain.MaintenanceRecord, error)
}

type CustomerPatch struct {
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	CreditLimitCents *int64  `json:"credit_limit_cents"`
	PaymentTerms     *string `json:"payment_terms"`
	Notes            *string `json:"notes"`
}

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Update(ctx context.Context, id string, patch CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, businessID string, page, pageSize int32) ([]domain.Customer, int32, error)
}

// RentalRequest is the booking input.
type RentalRequest struct {
	BusinessID       string `json:"business_id"`
	EquipmentID      string `json:"equipment_id"`
	CustomerID       string `json:"customer_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	DeliveryFeeCents int64  `json:"delivery_fee_cents"`
	PickupFeeCents   int64  `json:"pickup_fee_cents"`
	Notes            string `json:"notes"`
}

type RentalService interface {
	// Quote prices a prospective booking without reserving anything.
	Quote(ctx context.Context, req RentalRequest) (*domain.RentalQuote, error)
	Create(ctx context.Context, req RentalRequest) (*domain.Rental, error)
	Get(ctx context.Context, id string) (*domain.Rental, error)
	List(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	// ChangeStatus enforces reserved -> active -> completed, with
	// cancellation allowed from reserved or active. Terminal transitions
	// release the equipment.
	ChangeStatus(ctx context.Context, id string, status domain.RentalStatus) (*domain.Rental, error)
	Availability(ctx context.Context, equipmentID, startDate, endDate string) (*domain.Availability, error)
}

type InvoiceService interface {
	CreateFromRental(ctx context.Context, rentalID string) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Invoice, int32, error)
	// Send emails the invoice to the customer and marks it sent.
	Send(ctx context.Context, id string) (*domain.Invoice, error)
	Void(ctx context.Context, id string) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, id string) (*domain.Invoice, error)
}

type PaymentService interface {
	// CreateIntent opens a gateway payment intent for an invoice and
	// records a pending payment. The returned secret is handed to the
	// portal's payment form.
	CreateIntent(ctx context.Context, invoiceID string) (*domain.Payment, string, error)
	// HandleWebhook consumes a gateway event and advances the matching
	// payment (and on success, its invoice).
	HandleWebhook(ctx context.Context, body []byte) error
	Get(ctx context.Context, id string) (*domain.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
	List(ctx context.Context, businessID string, page, pageSize int32) ([]domain.Payment, int32, error)
}

type DeliveryPatch struct {
	ScheduledDate *string                `json:"scheduled_date"`
	Address       *string                `json:"address"`
	DriverName    *string                `json:"driver_name"`
	Status        *domain.DeliveryStatus `json:"status"`
	Proof         *domain.ProofOfService `json:"proof"`
}

type DeliveryService interface {
	Schedule(ctx context.Context, d *domain.DeliverySchedule) (*domain.DeliverySchedule, error)
	Get(ctx context.Context, id string) (*domain.DeliverySchedule, error)
	Update(ctx context.Context, id string, patch DeliveryPatch) (*domain.DeliverySchedule, error)
	ListByRental(ctx context.Context, rentalID string) ([]domain.DeliverySchedule, error)
	ListByBusiness(ctx context.Context, businessID, date string) ([]domain.DeliverySchedule, error)
}

type StaffService interface {
	Add(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	Get(ctx context.Context, id string) (*domain.Staff, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context, businessID string) ([]domain.Staff, error)
}

// AdminService backs the cross-tenant master admin panel.
type AdminService interface {
	ListBusinessStats(ctx context.Context) ([]domain.BusinessStats, error)
	PlatformStats(ctx context.Context) (*domain.PlatformStats, error)
}

type EmailService interface {
	SendInvoice(ctx context.Context, to, businessName string, inv *domain.Invoice) error
	SendInvoiceReminder(ctx context.Context, to, businessName string, inv *domain.Invoice) error
	SendPaymentReceipt(ctx context.Context, to, businessName string, p *domain.Payment) error
}
