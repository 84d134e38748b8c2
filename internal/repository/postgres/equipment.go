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

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	specs, err := json.Marshal(e.Specifications)
	if err != nil {
		return fmt.Errorf("failed to encode specifications: %w", err)
	}
	now := time.Now()
	e.CreatedOn = now
	e.UpdatedOn = now
	query := `INSERT INTO equipment (id, business_id, name, category, description, daily_rate_cents, weekly_rate_cents, monthly_rate_cents, status, condition, specifications, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.db.ExecContext(ctx, query, e.ID, e.BusinessID, e.Name, e.Category, e.Description, e.DailyRateCents, e.WeeklyRateCents, e.MonthlyRateCents, e.Status, e.Condition, specs, e.CreatedOn, e.UpdatedOn)
	return err
}

const equipmentColumns = `id, business_id, name, COALESCE(category, ''), COALESCE(description, ''), daily_rate_cents, COALESCE(weekly_rate_cents, 0), COALESCE(monthly_rate_cents, 0), status, condition, specifications, created_on, updated_on`

func scanEquipment(scan func(dest ...any) error) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	var specs []byte
	err := scan(&e.ID, &e.BusinessID, &e.Name, &e.Category, &e.Description, &e.DailyRateCents, &e.WeeklyRateCents, &e.MonthlyRateCents, &e.Status, &e.Condition, &specs, &e.CreatedOn, &e.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &e.Specifications); err != nil {
			return nil, fmt.Errorf("failed to decode specifications: %w", err)
		}
	}
	return e, nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanEquipment(row.Scan)
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	specs, err := json.Marshal(e.Specifications)
	if err != nil {
		return fmt.Errorf("failed to encode specifications: %w", err)
	}
	query := `UPDATE equipment SET name=$1, category=$2, description=$3, daily_rate_cents=$4, weekly_rate_cents=$5, monthly_rate_cents=$6, status=$7, condition=$8, specifications=$9, updated_on=$10 WHERE id=$11`
	_, err = r.db.ExecContext(ctx, query, e.Name, e.Category, e.Description, e.DailyRateCents, e.WeeklyRateCents, e.MonthlyRateCents, e.Status, e.Condition, specs, time.Now(), e.ID)
	return err
}

func (r *equipmentRepository) UpdateStatus(ctx context.Context, id string, status domain.EquipmentStatus) error {
	query := `UPDATE equipment SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	return err
}

func (r *equipmentRepository) ListByBusiness(ctx context.Context, businessID, category, status string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
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

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *e)
	}
	return items, count, rows.Err()
}
