package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, business_id, invoice_id, customer_id, amount_cents, currency, intent_id, status, COALESCE(failure_reason, ''), created_on, updated_on`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedOn = now
	p.UpdatedOn = now
	query := `INSERT INTO payments (id, business_id, invoice_id, customer_id, amount_cents, currency, intent_id, status, failure_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.BusinessID, p.InvoiceID, p.CustomerID, p.AmountCents, p.Currency, p.IntentID, p.Status, p.FailureReason, p.CreatedOn, p.UpdatedOn)
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.BusinessID, &p.InvoiceID, &p.CustomerID, &p.AmountCents, &p.Currency, &p.IntentID, &p.Status, &p.FailureReason, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE intent_id = $1`
	err := r.db.QueryRowContext(ctx, query, intentID).Scan(&p.ID, &p.BusinessID, &p.InvoiceID, &p.CustomerID, &p.AmountCents, &p.Currency, &p.IntentID, &p.Status, &p.FailureReason, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET status=$1, failure_reason=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, p.Status, p.FailureReason, time.Now(), p.ID)
	return err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.InvoiceID, &p.CustomerID, &p.AmountCents, &p.Currency, &p.IntentID, &p.Status, &p.FailureReason, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) ListByBusiness(ctx context.Context, businessID string, page, pageSize int32) ([]domain.Payment, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE business_id = $1`, businessID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE business_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, businessID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.InvoiceID, &p.CustomerID, &p.AmountCents, &p.Currency, &p.IntentID, &p.Status, &p.FailureReason, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, count, rows.Err()
}
