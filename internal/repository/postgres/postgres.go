package postgres

import (
	"database/sql"

	"rentalops-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BusinessRepository
	repository.EquipmentRepository
	repository.CustomerRepository
	repository.RentalRepository
	repository.InvoiceRepository
	repository.PaymentRepository
	repository.DeliveryRepository
	repository.MaintenanceRepository
	repository.StaffRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		BusinessRepository:    NewBusinessRepository(db),
		EquipmentRepository:   NewEquipmentRepository(db),
		CustomerRepository:    NewCustomerRepository(db),
		RentalRepository:      NewRentalRepository(db),
		InvoiceRepository:     NewInvoiceRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		DeliveryRepository:    NewDeliveryRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
		StaffRepository:       NewStaffRepository(db),
	}
}
