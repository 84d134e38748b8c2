package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, business_id, rental_id, customer_id, number, issue_date, due_date, lines, subtotal_cents, tax_cents, total_cents, status, created_on, updated_on`

func scanInvoice(scan func(dest ...any) error) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	var lines []byte
	err := scan(&inv.ID, &inv.BusinessID, &inv.RentalID, &inv.CustomerID, &inv.Number, dateOf(&inv.IssueDate), dateOf(&inv.DueDate), &lines, &inv.SubtotalCents, &inv.TaxCents, &inv.TotalCents, &inv.Status, &inv.CreatedOn, &inv.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &inv.Lines); err != nil {
			return nil, fmt.Errorf("failed to decode invoice lines: %w", err)
		}
	}
	return inv, nil
}

// Create assigns the next INV-<year>-<seq> number for the business. The
// business row is locked for the duration of the transaction so concurrent
// creates serialize on it; a bare count under read committed would let two
// writers pick the same number.
func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	lines, err := json.Marshal(inv.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode invoice lines: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var businessID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM businesses WHERE id = $1 FOR UPDATE`, inv.BusinessID).Scan(&businessID)
	if err != nil {
		return err
	}

	year := time.Now().Year()
	prefix := fmt.Sprintf("INV-%d-", year)
	var seq int
	err = tx.QueryRowContext(ctx, `SELECT count(*) + 1 FROM invoices WHERE business_id = $1 AND number LIKE $2`, inv.BusinessID, prefix+"%").Scan(&seq)
	if err != nil {
		return err
	}
	inv.Number = fmt.Sprintf("%s%04d", prefix, seq)

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	now := time.Now()
	inv.CreatedOn = now
	inv.UpdatedOn = now

	logger.DatabaseCall("INSERT", "invoices", "businessID", inv.BusinessID, "number", inv.Number)
	_, err = tx.ExecContext(ctx, `INSERT INTO invoices (id, business_id, rental_id, customer_id, number, issue_date, due_date, lines, subtotal_cents, tax_cents, total_cents, status, created_on, updated_on)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		inv.ID, inv.BusinessID, inv.RentalID, inv.CustomerID, inv.Number, inv.IssueDate, inv.DueDate, lines, inv.SubtotalCents, inv.TaxCents, inv.TotalCents, inv.Status, inv.CreatedOn, inv.UpdatedOn)
	if err != nil {
		return err
	}

	err = tx.Commit()
	logger.DatabaseResult("INSERT", 1, err, "invoiceID", inv.ID)
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanInvoice(row.Scan)
}

func (r *invoiceRepository) GetByRental(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE rental_id = $1`
	row := r.db.QueryRowContext(ctx, query, rentalID)
	return scanInvoice(row.Scan)
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	lines, err := json.Marshal(inv.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode invoice lines: %w", err)
	}
	query := `UPDATE invoices SET due_date=$1, lines=$2, subtotal_cents=$3, tax_cents=$4, total_cents=$5, status=$6, updated_on=$7 WHERE id=$8`
	_, err = r.db.ExecContext(ctx, query, inv.DueDate, lines, inv.SubtotalCents, inv.TaxCents, inv.TotalCents, inv.Status, time.Now(), inv.ID)
	return err
}

func (r *invoiceRepository) ListByBusiness(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Invoice, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE business_id = $1`
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

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, count, rows.Err()
}

func (r *invoiceRepository) ListOverdue(ctx context.Context, asOf string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE status = 'sent' AND due_date < $1 ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}
