package postgresql

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schema string

// schemaLockID serializes schema setup between replicas starting together.
const schemaLockID = 7_305_112

// EnsureSchema creates the tables when they do not exist yet
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		if _, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", schemaLockID); err != nil {
			return fmt.Errorf("failed to lock schema: %w", err)
		}
		if _, err := q.Exec(ctx, schema); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// NUMERIC columns travel as text so no pgx decimal codec is needed.
func decimalParam(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func scanDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric %q: %w", *s, err)
	}
	return &d, nil
}

// inLocation moves a DATE column value, scanned as UTC midnight, to midnight
// of the same calendar day in loc.
func inLocation(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
