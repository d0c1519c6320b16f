package main

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Simplici0/cotizador/internal/db"
	"github.com/Simplici0/cotizador/internal/migrations"
	"github.com/Simplici0/cotizador/internal/seed"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if _, err := seed.Run(database); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	return &server{db: database, company: "Servicios Industriales", log: zerolog.Nop()}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func seedQuote(t *testing.T, database *sql.DB, id, createdAt, client, project, total string) {
	t.Helper()

	_, err := database.Exec(`
		INSERT INTO quotes (
			id, created_at, updated_at, client_name, project_name, duration_months,
			input_json, client_quote_json, internal_json, subtotal, tax, total
		)
		VALUES (?, ?, ?, ?, ?, '1', '{}', '{}', '{}', '0', '0', ?)
	`, id, createdAt, createdAt, client, project, total)
	if err != nil {
		t.Fatalf("failed to seed quote: %v", err)
	}
}
