package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"github.com/furnishop/shop-backend-go/internal/repository/postgresql"
)

// TestDatabaseSetup holds the connection used by the integration tests
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema. The
// test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all rows
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	for _, table := range []string{"payroll_payments", "attendances", "employees"} {
		if _, err := s.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
