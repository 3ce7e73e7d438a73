package gst

import (
	"context"
	"errors"
	"strings"

	"gstbill/internal/domain"
)

// MaxNumberLookup returns the highest invoice number issued in series, or 0
// when the series is empty.
type MaxNumberLookup func(ctx context.Context, series string) (int64, error)

// PersistFunc attempts to store the invoice under number. It must return an
// error matching domain.ErrConflict when (series, number) is already taken.
type PersistFunc func(ctx context.Context, number int64) error

// maxAutoAttempts bounds persistence attempts for auto-allocated numbers:
// the first try plus one retry against a freshly read maximum.
const maxAutoAttempts = 2

// ResolveInvoiceNumber picks the invoice number for series and persists the
// invoice through persist.
//
// An explicit number is used verbatim; a conflict on it is returned to the
// caller. Otherwise the number is max+1, and a conflict (another writer took
// the same number first) is retried once with a re-read maximum before
// being surfaced as a ConflictError.
func ResolveInvoiceNumber(
	ctx context.Context,
	series string,
	explicit *int64,
	maxLookup MaxNumberLookup,
	persist PersistFunc,
) (int64, error) {
	series = strings.TrimSpace(series)
	if series == "" {
		return 0, domain.NewValidationError("series", "series is required")
	}

	if explicit != nil {
		if *explicit <= 0 {
			return 0, domain.NewValidationError("number", "invoice number must be positive")
		}
		if err := persist(ctx, *explicit); err != nil {
			return 0, err
		}
		return *explicit, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxAutoAttempts; attempt++ {
		next, err := NextNumber(ctx, series, maxLookup)
		if err != nil {
			return 0, err
		}
		lastErr = persist(ctx, next)
		if lastErr == nil {
			return next, nil
		}
		if !errors.Is(lastErr, domain.ErrConflict) {
			return 0, lastErr
		}
	}
	return 0, lastErr
}

// NextNumber returns max+1 for series without reserving it.
func NextNumber(ctx context.Context, series string, maxLookup MaxNumberLookup) (int64, error) {
	current, err := maxLookup(ctx, series)
	if err != nil {
		return 0, &domain.LookupFailure{What: "invoice series", Key: series, Err: err}
	}
	if current < 0 {
		current = 0
	}
	return current + 1, nil
}
