package config

import (
	"os"
	"path/filepath"
	"testing"
)

// unset clears key for the duration of the test; t.Setenv restores it.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	unset(t, "COTIZADOR_A")
	unset(t, "COTIZADOR_B")
	unset(t, "COTIZADOR_C")

	path := writeDotEnv(t, `
# comment

COTIZADOR_A=one
export COTIZADOR_B=two
COTIZADOR_C="three"
`)

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	for key, want := range map[string]string{"COTIZADOR_A": "one", "COTIZADOR_B": "two", "COTIZADOR_C": "three"} {
		if got := os.Getenv(key); got != want {
			t.Fatalf("%s=%q, want %q", key, got, want)
		}
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("COTIZADOR_KEEP", "already")

	path := writeDotEnv(t, "COTIZADOR_KEEP=fromfile\n")
	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("COTIZADOR_KEEP"); got != "already" {
		t.Fatalf("COTIZADOR_KEEP=%q, want %q", got, "already")
	}
}

func TestLoadDotEnv_StripsSingleQuotes(t *testing.T) {
	unset(t, "COTIZADOR_Q")

	path := writeDotEnv(t, "COTIZADOR_Q='hello world'\n")
	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("COTIZADOR_Q"); got != "hello world" {
		t.Fatalf("COTIZADOR_Q=%q, want %q", got, "hello world")
	}
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"APP_ENV", "DB_PATH", "PORT", "MIGRATIONS_DIR", "COMPANY_NAME", "LOG_LEVEL"} {
		unset(t, key)
	}
	t.Setenv("PORT", "9090")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("Port=%q, want 9090", cfg.Port)
	}
	if cfg.DBPath != defaultDBPath || cfg.MigrationsDir != defaultMigrationsDir || cfg.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if !cfg.IsDev() {
		t.Fatalf("IsDev() = false for env %q", cfg.Env)
	}
}
