package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, business_id, equipment_id, customer_id, start_date, end_date, total_days, daily_rate_cents, weekly_rate_cents, monthly_rate_cents, subtotal_cents, tax_cents, delivery_fee_cents, pickup_fee_cents, total_cents, status, COALESCE(notes, ''), created_on, updated_on`

func scanRental(scan func(dest ...any) error) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := scan(&rt.ID, &rt.BusinessID, &rt.EquipmentID, &rt.CustomerID, dateOf(&rt.StartDate), dateOf(&rt.EndDate), &rt.TotalDays, &rt.DailyRateCents, &rt.WeeklyRateCents, &rt.MonthlyRateCents, &rt.SubtotalCents, &rt.TaxCents, &rt.DeliveryFeeCents, &rt.PickupFeeCents, &rt.TotalCents, &rt.Status, &rt.Notes, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// CreateReserved books the rental atomically. The equipment row is locked
// for the duration of the transaction so two requests racing for the same
// dates serialize on the row; the loser sees the winner's booking in the
// overlap check and gets ErrDateConflict.
func (r *rentalRepository) CreateReserved(ctx context.Context, rt *domain.Rental) error {
	logger.DatabaseCall("INSERT", "rentals", "equipmentID", rt.EquipmentID, "startDate", rt.StartDate, "endDate", rt.EndDate)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status domain.EquipmentStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM equipment WHERE id = $1 FOR UPDATE`, rt.EquipmentID).Scan(&status)
	if err != nil {
		return err
	}
	if status == domain.EquipmentStatusMaintenance || status == domain.EquipmentStatusInactive {
		return repository.ErrEquipmentUnavailable
	}

	var conflicts int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM rentals
	        WHERE equipment_id = $1 AND status IN ('reserved', 'active')
	          AND start_date <= $3 AND end_date >= $2`,
		rt.EquipmentID, rt.StartDate, rt.EndDate).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return repository.ErrDateConflict
	}

	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	rt.Status = domain.RentalStatusReserved

	_, err = tx.ExecContext(ctx, `INSERT INTO rentals (id, business_id, equipment_id, customer_id, start_date, end_date, total_days, daily_rate_cents, weekly_rate_cents, monthly_rate_cents, subtotal_cents, tax_cents, delivery_fee_cents, pickup_fee_cents, total_cents, status, notes, created_on, updated_on)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		rt.ID, rt.BusinessID, rt.EquipmentID, rt.CustomerID, rt.StartDate, rt.EndDate, rt.TotalDays, rt.DailyRateCents, rt.WeeklyRateCents, rt.MonthlyRateCents, rt.SubtotalCents, rt.TaxCents, rt.DeliveryFeeCents, rt.PickupFeeCents, rt.TotalCents, rt.Status, rt.Notes, rt.CreatedOn, rt.UpdatedOn)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE equipment SET status = 'rented', updated_on = $1 WHERE id = $2`, now, rt.EquipmentID)
	if err != nil {
		return err
	}

	err = tx.Commit()
	logger.DatabaseResult("INSERT", 1, err, "rentalID", rt.ID)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanRental(row.Scan)
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET start_date=$1, end_date=$2, total_days=$3, subtotal_cents=$4, tax_cents=$5, delivery_fee_cents=$6, pickup_fee_cents=$7, total_cents=$8, status=$9, notes=$10, updated_on=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, rt.StartDate, rt.EndDate, rt.TotalDays, rt.SubtotalCents, rt.TaxCents, rt.DeliveryFeeCents, rt.PickupFeeCents, rt.TotalCents, rt.Status, rt.Notes, time.Now(), rt.ID)
	return err
}

func (r *rentalRepository) ListByBusiness(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ListOverlapping(ctx context.Context, equipmentID, startDate, endDate string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	        WHERE equipment_id = $1 AND status IN ('reserved', 'active')
	          AND start_date <= $3 AND end_date >= $2
	        ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, equipmentID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows.Scan)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) CountOpenByEquipment(ctx context.Context, equipmentID string) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE equipment_id = $1 AND status IN ('reserved', 'active')`, equipmentID).Scan(&count)
	return count, err
}

func (r *rentalRepository) CountOpenByCustomer(ctx context.Context, customerID string) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE customer_id = $1 AND status IN ('reserved', 'active')`, customerID).Scan(&count)
	return count, err
}
