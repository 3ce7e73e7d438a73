package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const insertLineQuery = `INSERT INTO invoice_lines
	(invoice_id, position, hsn_code, description, qty, unit, rate, amount, gst_rate)
	VALUES (:invoice_id, :position, :hsn_code, :description, :qty, :unit, :rate, :amount, :gst_rate)`

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `INSERT INTO invoices (
			id, type, series, number, invoice_date, customer_id, truck_no, cash_credit,
			taxable_value, cgst_amount, sgst_amount, igst_amount, round_off, grand_total, gst_rate,
			created_at, updated_at
		) VALUES (
			:id, :type, :series, :number, :invoice_date, :customer_id, :truck_no, :cash_credit,
			:taxable_value, :cgst_amount, :sgst_amount, :igst_amount, :round_off, :grand_total, :gst_rate,
			:created_at, :updated_at
		)`, inv)
		if err != nil {
			return err
		}
		return insertLines(ctx, tx, inv)
	})
	if err != nil {
		return translateInvoiceErr("invoiceRepo.Create", inv, err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	if err := r.db.SelectContext(ctx, &inv.Lines,
		"SELECT * FROM invoice_lines WHERE invoice_id = $1 ORDER BY position", id); err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID lines: %w", err)
	}

	var c domain.Customer
	err = r.db.GetContext(ctx, &c, "SELECT * FROM customers WHERE id = $1", inv.CustomerID)
	switch {
	case err == nil:
		inv.Customer = &c
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("invoiceRepo.GetByID customer: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, int, error) {
	where := "WHERE ($1 = '' OR i.type = $1) AND ($2 = '' OR i.series = $2)"
	args := []any{string(filter.Type), filter.Series}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices i "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := `SELECT i.*,
			COALESCE(c.name, '') AS customer_name,
			COALESCE(c.gstin, '') AS customer_gstin,
			COALESCE(c.state, '') AS customer_state
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		` + where + `
		ORDER BY i.invoice_date DESC, i.series, i.number DESC
		LIMIT $3 OFFSET $4`

	var rows []domain.InvoiceSummary
	if err := r.db.SelectContext(ctx, &rows, query, append(args, filter.Limit, filter.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return rows, total, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, `UPDATE invoices SET
			type = :type, series = :series, number = :number, invoice_date = :invoice_date,
			customer_id = :customer_id, truck_no = :truck_no, cash_credit = :cash_credit,
			taxable_value = :taxable_value, cgst_amount = :cgst_amount, sgst_amount = :sgst_amount,
			igst_amount = :igst_amount, round_off = :round_off, grand_total = :grand_total,
			gst_rate = :gst_rate, updated_at = :updated_at
			WHERE id = :id`, inv)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrInvoiceNotFound
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM invoice_lines WHERE invoice_id = $1", inv.ID); err != nil {
			return err
		}
		return insertLines(ctx, tx, inv)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return err
		}
		return translateInvoiceErr("invoiceRepo.Update", inv, err)
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) MaxNumber(ctx context.Context, series string) (int64, error) {
	var maxNumber int64
	err := r.db.GetContext(ctx, &maxNumber,
		"SELECT COALESCE(MAX(number), 0) FROM invoices WHERE series = $1", series)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MaxNumber: %w", err)
	}
	return maxNumber, nil
}

func insertLines(ctx context.Context, tx *sqlx.Tx, inv *domain.Invoice) error {
	if len(inv.Lines) == 0 {
		return nil
	}
	for i := range inv.Lines {
		inv.Lines[i].InvoiceID = inv.ID
		inv.Lines[i].Position = i + 1
	}
	_, err := tx.NamedExecContext(ctx, insertLineQuery, inv.Lines)
	return err
}

// translateInvoiceErr maps constraint violations raised while writing inv
// to domain errors.
func translateInvoiceErr(op string, inv *domain.Invoice, err error) error {
	switch {
	case pgViolation(err, pgUniqueViolation, "invoices_series_number_key"):
		return &domain.ConflictError{Series: inv.Series, Number: inv.Number}
	case pgViolation(err, pgForeignKeyViolation, "invoices_customer_id_fkey"):
		return domain.ErrCustomerNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
