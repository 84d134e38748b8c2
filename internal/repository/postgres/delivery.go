package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type deliveryRepository struct {
	db *sql.DB
}

func NewDeliveryRepository(db *sql.DB) repository.DeliveryRepository {
	return &deliveryRepository{db: db}
}

const deliveryColumns = `id, business_id, rental_id, kind, scheduled_date, COALESCE(address, ''), COALESCE(driver_name, ''), status, proof, created_on, updated_on`

func scanDelivery(scan func(dest ...any) error) (*domain.DeliverySchedule, error) {
	d := &domain.DeliverySchedule{}
	var proof []byte
	err := scan(&d.ID, &d.BusinessID, &d.RentalID, &d.Kind, dateOf(&d.ScheduledDate), &d.Address, &d.DriverName, &d.Status, &proof, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(proof) > 0 {
		if err := json.Unmarshal(proof, &d.Proof); err != nil {
			return nil, fmt.Errorf("failed to decode proof of service: %w", err)
		}
	}
	return d, nil
}

func (r *deliveryRepository) Create(ctx context.Context, d *domain.DeliverySchedule) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	proof, err := json.Marshal(d.Proof)
	if err != nil {
		return fmt.Errorf("failed to encode proof of service: %w", err)
	}
	now := time.Now()
	d.CreatedOn = now
	d.UpdatedOn = now
	query := `INSERT INTO delivery_schedules (id, business_id, rental_id, kind, scheduled_date, address, driver_name, status, proof, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.ExecContext(ctx, query, d.ID, d.BusinessID, d.RentalID, d.Kind, d.ScheduledDate, d.Address, d.DriverName, d.Status, proof, d.CreatedOn, d.UpdatedOn)
	return err
}

func (r *deliveryRepository) GetByID(ctx context.Context, id string) (*domain.DeliverySchedule, error) {
	query := `SELECT ` + deliveryColumns + ` FROM delivery_schedules WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanDelivery(row.Scan)
}

func (r *deliveryRepository) Update(ctx context.Context, d *domain.DeliverySchedule) error {
	proof, err := json.Marshal(d.Proof)
	if err != nil {
		return fmt.Errorf("failed to encode proof of service: %w", err)
	}
	query := `UPDATE delivery_schedules SET scheduled_date=$1, address=$2, driver_name=$3, status=$4, proof=$5, updated_on=$6 WHERE id=$7`
	_, err = r.db.ExecContext(ctx, query, d.ScheduledDate, d.Address, d.DriverName, d.Status, proof, time.Now(), d.ID)
	return err
}

func (r *deliveryRepository) ListByRental(ctx context.Context, rentalID string) ([]domain.DeliverySchedule, error) {
	query := `SELECT ` + deliveryColumns + ` FROM delivery_schedules WHERE rental_id = $1 ORDER BY scheduled_date`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func (r *deliveryRepository) ListByBusiness(ctx context.Context, businessID, date string) ([]domain.DeliverySchedule, error) {
	query := `SELECT ` + deliveryColumns + ` FROM delivery_schedules WHERE business_id = $1`
	args := []interface{}{businessID}
	if date != "" {
		query += " AND scheduled_date = $2"
		args = append(args, date)
	}
	query += " ORDER BY scheduled_date"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func collectDeliveries(rows *sql.Rows) ([]domain.DeliverySchedule, error) {
	var deliveries []domain.DeliverySchedule
	for rows.Next() {
		d, err := scanDelivery(rows.Scan)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *d)
	}
	return deliveries, rows.Err()
}
