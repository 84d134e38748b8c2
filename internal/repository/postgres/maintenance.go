package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedOn = time.Now()
	query := `INSERT INTO maintenance_records (id, business_id, equipment_id, description, cost_cents, started_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.BusinessID, m.EquipmentID, m.Description, m.CostCents, m.StartedOn, m.CreatedOn)
	return err
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error) {
	m := &domain.MaintenanceRecord{}
	query := `SELECT id, business_id, equipment_id, COALESCE(description, ''), cost_cents, started_on, closed_on, created_on FROM maintenance_records WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.BusinessID, &m.EquipmentID, &m.Description, &m.CostCents, dateOf(&m.StartedOn), &m.ClosedOn, &m.CreatedOn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) Close(ctx context.Context, id string, closedOn time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE maintenance_records SET closed_on = $1 WHERE id = $2`, closedOn, id)
	return err
}

func (r *maintenanceRepository) ListByEquipment(ctx context.Context, equipmentID string) ([]domain.MaintenanceRecord, error) {
	query := `SELECT id, business_id, equipment_id, COALESCE(description, ''), cost_cents, started_on, closed_on, created_on FROM maintenance_records WHERE equipment_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MaintenanceRecord
	for rows.Next() {
		var m domain.MaintenanceRecord
		if err := rows.Scan(&m.ID, &m.BusinessID, &m.EquipmentID, &m.Description, &m.CostCents, dateOf(&m.StartedOn), &m.ClosedOn, &m.CreatedOn); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}
