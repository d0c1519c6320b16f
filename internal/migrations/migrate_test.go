package migrations

import (
	"path/filepath"
	"testing"

	"github.com/Simplici0/cotizador/internal/db"
)

func TestUp_CreatesSchemaAndIsRepeatable(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	for i := 0; i < 2; i++ {
		if err := Up(database, "../../migrations"); err != nil {
			t.Fatalf("run migrations (iteration=%d): %v", i, err)
		}
	}

	for _, table := range []string{"ppe_catalog", "pricing_rules", "quotes"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	version, err := Version(database)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version < 1 {
		t.Fatalf("version = %d, want >= 1", version)
	}
}
