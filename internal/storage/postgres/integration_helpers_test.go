package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// openPostgresStoreForIntegrationTest подключается к тестовой базе или пропускает тест.
// Схема должна быть применена снаружи (см. docs по переменной STOREFRONT_POSTGRES_TEST_DSN).
func openPostgresStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("STOREFRONT_POSTGRES_TEST_DSN is not set, skipping postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Skipf("postgres is not reachable: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	truncateAllTablesForIntegrationTest(t, store)
	return store
}

func truncateAllTablesForIntegrationTest(t *testing.T, store *Store) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := store.DB().ExecContext(ctx,
		`TRUNCATE TABLE order_items, orders, products, customers`,
	); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
