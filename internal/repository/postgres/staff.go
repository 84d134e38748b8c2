package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type staffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, s *domain.Staff) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedOn = time.Now()
	query := `INSERT INTO staff (id, business_id, name, email, phone, role, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.BusinessID, s.Name, s.Email, s.Phone, s.Role, s.CreatedOn)
	return err
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	s := &domain.Staff{}
	query := `SELECT id, business_id, name, email, COALESCE(phone, ''), role, created_on FROM staff WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.BusinessID, &s.Name, &s.Email, &s.Phone, &s.Role, &s.CreatedOn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *staffRepository) Update(ctx context.Context, s *domain.Staff) error {
	query := `UPDATE staff SET name=$1, email=$2, phone=$3, role=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, s.Name, s.Email, s.Phone, s.Role, s.ID)
	return err
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	return err
}

func (r *staffRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Staff, error) {
	query := `SELECT id, business_id, name, email, COALESCE(phone, ''), role, created_on FROM staff WHERE business_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Staff
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.Name, &s.Email, &s.Phone, &s.Role, &s.CreatedOn); err != nil {
			return nil, err
		}
		members = append(members, s)
	}
	return members, rows.Err()
}
