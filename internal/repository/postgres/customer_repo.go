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

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

const insertCustomerQuery = `INSERT INTO customers
	(id, name, gstin, state, state_code, address, mobile, email, created_at, updated_at)
	VALUES (:id, :name, :gstin, :state, :state_code, :address, :mobile, :email, :created_at, :updated_at)`

func stampNewCustomer(c *domain.Customer, now time.Time) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	stampNewCustomer(customer, time.Now().UTC())
	if _, err := r.db.NamedExecContext(ctx, insertCustomerQuery, customer); err != nil {
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, "SELECT * FROM customers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM customers"); err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List count: %w", err)
	}

	var customers []domain.Customer
	err := r.db.SelectContext(ctx, &customers,
		"SELECT * FROM customers ORDER BY name, created_at LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	customer.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, `UPDATE customers SET
		name = :name, gstin = :gstin, state = :state, state_code = :state_code,
		address = :address, mobile = :mobile, email = :email, updated_at = :updated_at
		WHERE id = :id`, customer)
	if err != nil {
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		if pgViolation(err, pgForeignKeyViolation, "invoices_customer_id_fkey") {
			return domain.ErrCustomerHasInvoices
		}
		return fmt.Errorf("customerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) BulkCreate(ctx context.Context, customers []domain.Customer, clearFirst bool) (int, error) {
	now := time.Now().UTC()
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if clearFirst {
			if err := clearAll(ctx, tx); err != nil {
				return err
			}
		}
		stmt, err := tx.PrepareNamedContext(ctx, insertCustomerQuery)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i := range customers {
			stampNewCustomer(&customers[i], now)
			if _, err := stmt.ExecContext(ctx, &customers[i]); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("customerRepo.BulkCreate: %w", err)
	}
	return len(customers), nil
}

func (r *customerRepo) ClearAll(ctx context.Context) error {
	if err := withTx(ctx, r.db, func(tx *sqlx.Tx) error { return clearAll(ctx, tx) }); err != nil {
		return fmt.Errorf("customerRepo.ClearAll: %w", err)
	}
	return nil
}

// clearAll deletes children before parents so the RESTRICT foreign key on
// invoices.customer_id is never hit.
func clearAll(ctx context.Context, tx *sqlx.Tx) error {
	for _, q := range []string{
		"DELETE FROM invoice_lines",
		"DELETE FROM invoices",
		"DELETE FROM customers",
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
