package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/cotizador/internal/db"
	"github.com/Simplici0/cotizador/internal/migrations"
	"github.com/Simplici0/cotizador/internal/pricing"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "seed-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	database := openMigrated(t)

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 8 {
				t.Fatalf("expected 8 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM ppe_catalog`, nil, 7)
	assertCount(t, database, `SELECT COUNT(*) FROM ppe_catalog WHERE sku = ?`, pricing.SKUEarplugs, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM pricing_rules WHERE id = 1 AND override_mode = ?`, "merge", 1)
}

func TestRunKeepsOperatorPrices(t *testing.T) {
	t.Parallel()

	database := openMigrated(t)
	if _, err := database.Exec(`
		INSERT INTO ppe_catalog (sku, name, unit, unit_price_plus_tax)
		VALUES (?, ?, ?, ?)
	`, pricing.SKUHelmet, "Casco propio", "pz", "185.50"); err != nil {
		t.Fatalf("insert helmet: %v", err)
	}

	stats, err := Run(database)
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 7 {
		t.Fatalf("expected 7 inserts, got %d", stats.Inserts)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM ppe_catalog WHERE sku = ? AND unit_price_plus_tax = ?`, []any{pricing.SKUHelmet, "185.50"}, 1)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
