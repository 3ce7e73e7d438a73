package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type hsnRepo struct {
	db *sqlx.DB
}

// NewHSNRepo creates a new PostgreSQL-backed HSNRepository.
func NewHSNRepo(db *sqlx.DB) port.HSNRepository {
	return &hsnRepo{db: db}
}

func (r *hsnRepo) List(ctx context.Context) ([]domain.HSN, error) {
	var entries []domain.HSN
	if err := r.db.SelectContext(ctx, &entries, "SELECT * FROM hsn ORDER BY hsn_code"); err != nil {
		return nil, fmt.Errorf("hsnRepo.List: %w", err)
	}
	return entries, nil
}

func (r *hsnRepo) GetByCode(ctx context.Context, code string) (*domain.HSN, error) {
	var h domain.HSN
	err := r.db.GetContext(ctx, &h, "SELECT * FROM hsn WHERE hsn_code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHSNNotFound
		}
		return nil, fmt.Errorf("hsnRepo.GetByCode: %w", err)
	}
	return &h, nil
}

func (r *hsnRepo) Create(ctx context.Context, hsn *domain.HSN) error {
	hsn.ID = uuid.New()
	hsn.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hsn (id, hsn_code, description, gst_rate_percent, exempt_for_bos, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		hsn.ID, hsn.Code, hsn.Description, hsn.GSTRatePercent, hsn.ExemptForBOS, hsn.CreatedAt)
	if err != nil {
		if pgViolation(err, pgUniqueViolation, "hsn_hsn_code_key") {
			return domain.ErrDuplicateHSN
		}
		return fmt.Errorf("hsnRepo.Create: %w", err)
	}
	return nil
}

func (r *hsnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM hsn WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("hsnRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrHSNNotFound
	}
	return nil
}

// GSTRate implements gst.RateLookup.
func (r *hsnRepo) GSTRate(ctx context.Context, code string) (decimal.Decimal, bool, error) {
	var rate decimal.Decimal
	err := r.db.GetContext(ctx, &rate, "SELECT gst_rate_percent FROM hsn WHERE hsn_code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("hsnRepo.GSTRate: %w", err)
	}
	return rate, true, nil
}
