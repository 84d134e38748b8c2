package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, business_id, name, email, COALESCE(phone, ''), COALESCE(address, ''), credit_limit_cents, COALESCE(payment_terms, ''), COALESCE(notes, ''), created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	query := `INSERT INTO customers (id, business_id, name, email, phone, address, credit_limit_cents, payment_terms, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.BusinessID, c.Name, c.Email, c.Phone, c.Address, c.CreditLimitCents, c.PaymentTerms, c.Notes, c.CreatedOn, c.UpdatedOn)
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.BusinessID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreditLimitCents, &c.PaymentTerms, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, businessID, email string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE business_id = $1 AND lower(email) = lower($2)`
	err := r.db.QueryRowContext(ctx, query, businessID, email).Scan(&c.ID, &c.BusinessID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreditLimitCents, &c.PaymentTerms, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, email=$2, phone=$3, address=$4, credit_limit_cents=$5, payment_terms=$6, notes=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.Address, c.CreditLimitCents, c.PaymentTerms, c.Notes, time.Now(), c.ID)
	return err
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}

func (r *customerRepository) ListByBusiness(ctx context.Context, businessID string, page, pageSize int32) ([]domain.Customer, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM customers WHERE business_id = $1`, businessID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM customers WHERE business_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, customerColumns)
	rows, err := r.db.QueryContext(ctx, query, businessID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreditLimitCents, &c.PaymentTerms, &c.Notes, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, count, rows.Err()
}
