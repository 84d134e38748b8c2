package repository

import (
	"context"
	"errors"
	"time"

	"rentalops-backend/internal/domain"
)

// Errors surfaced by the rental booking transaction.
var (
	// ErrDateConflict means an open rental already covers part of the
	// requested date range.
	ErrDateConflict = errors.New("rental dates conflict with an existing booking")
	// ErrEquipmentUnavailable means the equipment is not in a rentable
	// status (maintenance, inactive).
	ErrEquipmentUnavailable = errors.New("equipment is not available for rental")
)

type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) error
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	List(ctx context.Context, status string) ([]domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
	Delete(ctx context.Context, id string) error
	UpdateIntelligence(ctx context.Context, id string, intel *domain.WebIntelligence, score int32) error
	ListStats(ctx context.Context) ([]domain.BusinessStats, error)
	PlatformStats(ctx context.Context) (*domain.PlatformStats, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	UpdateStatus(ctx context.Context, id string, status domain.EquipmentStatus) error
	Delete(ctx context.Context, id string) error
	ListByBusiness(ctx context.Context, businessID, category, status string, page, pageSize int32) ([]domain.Equipment, int32, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, businessID, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
	ListByBusiness(ctx context.Context, businessID string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type RentalRepository interface {
	// CreateReserved books the rental inside a single transaction: it
	// locks the equipment row, rejects if the equipment is not rentable or
	// an open rental overlaps the requested range, inserts the rental, and
	// flips the equipment to rented.
	CreateReserved(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) error
	ListByBusiness(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListOverlapping(ctx context.Context, equipmentID, startDate, endDate string) ([]domain.Rental, error)
	CountOpenByEquipment(ctx context.Context, equipmentID string) (int32, error)
	CountOpenByCustomer(ctx context.Context, customerID string) (int32, error)
}

type InvoiceRepository interface {
	// Create assigns the next sequential number for the business and year
	// before inserting.
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByRental(ctx context.Context, rentalID string) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	ListByBusiness(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Invoice, int32, error)
	ListOverdue(ctx context.Context, asOf string) ([]domain.Invoice, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
	ListByBusiness(ctx context.Context, businessID string, page, pageSize int32) ([]domain.Payment, int32, error)
}

type DeliveryRepository interface {
	Create(ctx context.Context, d *domain.DeliverySchedule) error
	GetByID(ctx context.Context, id string) (*domain.DeliverySchedule, error)
	Update(ctx context.Context, d *domain.DeliverySchedule) error
	ListByRental(ctx context.Context, rentalID string) ([]domain.DeliverySchedule, error)
	ListByBusiness(ctx context.Context, businessID, date string) ([]domain.DeliverySchedule, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.MaintenanceRecord) error
	GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error)
	Close(ctx context.Context, id string, closedOn time.Time) error
	ListByEquipment(ctx context.Context, equipmentID string) ([]domain.MaintenanceRecord, error)
}

type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	Update(ctx context.Context, s *domain.Staff) error
	Delete(ctx context.Context, id string) error
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Staff, error)
}
