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

type businessRepository struct {
	db *sql.DB
}

func NewBusinessRepository(db *sql.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, b *domain.Business) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	branding, err := json.Marshal(b.Branding)
	if err != nil {
		return fmt.Errorf("failed to encode branding: %w", err)
	}
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	query := `INSERT INTO businesses (id, name, type, email, phone, website, address, branding, tax_rate_bps, reputation_score, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.db.ExecContext(ctx, query, b.ID, b.Name, b.Type, b.Email, b.Phone, b.Website, b.Address, branding, b.TaxRateBps, b.ReputationScore, b.Status, b.CreatedOn, b.UpdatedOn)
	return err
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	b := &domain.Business{}
	var branding []byte
	var intel []byte
	query := `SELECT id, name, type, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(website, ''), COALESCE(address, ''), branding, tax_rate_bps, reputation_score, status, web_intelligence, created_on, updated_on FROM businesses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Type, &b.Email, &b.Phone, &b.Website, &b.Address, &branding, &b.TaxRateBps, &b.ReputationScore, &b.Status, &intel, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(branding) > 0 {
		if err := json.Unmarshal(branding, &b.Branding); err != nil {
			return nil, fmt.Errorf("failed to decode branding: %w", err)
		}
	}
	if len(intel) > 0 {
		b.Intelligence = &domain.WebIntelligence{}
		if err := json.Unmarshal(intel, b.Intelligence); err != nil {
			return nil, fmt.Errorf("failed to decode web intelligence: %w", err)
		}
	}
	return b, nil
}

func (r *businessRepository) List(ctx context.Context, status string) ([]domain.Business, error) {
	query := `SELECT id, name, type, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(website, ''), COALESCE(address, ''), branding, tax_rate_bps, reputation_score, status, created_on, updated_on FROM businesses`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		var b domain.Business
		var branding []byte
		if err := rows.Scan(&b.ID, &b.Name, &b.Type, &b.Email, &b.Phone, &b.Website, &b.Address, &branding, &b.TaxRateBps, &b.ReputationScore, &b.Status, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		if len(branding) > 0 {
			if err := json.Unmarshal(branding, &b.Branding); err != nil {
				return nil, fmt.Errorf("failed to decode branding: %w", err)
			}
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (r *businessRepository) Update(ctx context.Context, b *domain.Business) error {
	branding, err := json.Marshal(b.Branding)
	if err != nil {
		return fmt.Errorf("failed to encode branding: %w", err)
	}
	query := `UPDATE businesses SET name=$1, type=$2, email=$3, phone=$4, website=$5, address=$6, branding=$7, tax_rate_bps=$8, status=$9, updated_on=$10 WHERE id=$11`
	_, err = r.db.ExecContext(ctx, query, b.Name, b.Type, b.Email, b.Phone, b.Website, b.Address, branding, b.TaxRateBps, b.Status, time.Now(), b.ID)
	return err
}

func (r *businessRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	return err
}

func (r *businessRepository) UpdateIntelligence(ctx context.Context, id string, intel *domain.WebIntelligence, score int32) error {
	data, err := json.Marshal(intel)
	if err != nil {
		return fmt.Errorf("failed to encode web intelligence: %w", err)
	}
	query := `UPDATE businesses SET web_intelligence=$1, reputation_score=$2, updated_on=$3 WHERE id=$4`
	_, err = r.db.ExecContext(ctx, query, data, score, time.Now(), id)
	return err
}

func (r *businessRepository) ListStats(ctx context.Context) ([]domain.BusinessStats, error) {
	query := `SELECT b.id, b.name, b.type, b.status, b.reputation_score, b.created_on, b.updated_on,
	       (SELECT count(*) FROM equipment e WHERE e.business_id = b.id),
	       (SELECT count(*) FROM customers c WHERE c.business_id = b.id),
	       (SELECT count(*) FROM rentals r WHERE r.business_id = b.id),
	       (SELECT count(*) FROM rentals r WHERE r.business_id = b.id AND r.status IN ('reserved', 'active')),
	       (SELECT COALESCE(sum(p.amount_cents), 0) FROM payments p WHERE p.business_id = b.id AND p.status = 'succeeded')
	  FROM businesses b ORDER BY b.created_on DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.BusinessStats
	for rows.Next() {
		var s domain.BusinessStats
		if err := rows.Scan(&s.Business.ID, &s.Business.Name, &s.Business.Type, &s.Business.Status, &s.Business.ReputationScore, &s.Business.CreatedOn, &s.Business.UpdatedOn,
			&s.EquipmentCount, &s.CustomerCount, &s.RentalCount, &s.OpenRentals, &s.RevenueCents); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *businessRepository) PlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	s := &domain.PlatformStats{}
	query := `SELECT
	       (SELECT count(*) FROM businesses),
	       (SELECT count(*) FROM businesses WHERE status = 'active'),
	       (SELECT count(*) FROM equipment),
	       (SELECT count(*) FROM customers),
	       (SELECT count(*) FROM rentals WHERE status IN ('reserved', 'active')),
	       (SELECT COALESCE(sum(amount_cents), 0) FROM payments WHERE status = 'succeeded')`
	err := r.db.QueryRowContext(ctx, query).Scan(&s.BusinessCount, &s.ActiveBusinesses, &s.EquipmentCount, &s.CustomerCount, &s.OpenRentals, &s.TotalRevenueCents)
	if err != nil {
		return nil, err
	}
	return s, nil
}
