package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/cotizador/internal/config"
	"github.com/Simplici0/cotizador/internal/db"
	"github.com/Simplici0/cotizador/internal/logging"
	"github.com/Simplici0/cotizador/internal/migrations"
	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/seed"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after json body")

type server struct {
	db      *sql.DB
	company string
	log     zerolog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.IsDev())
	decimal.MarshalJSONWithoutQuotes = true

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, cfg.MigrationsDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	stats, err := seed.Run(database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}
	log.Info().Int("inserts", stats.Inserts).Msg("seed complete")

	srv := &server{db: database, company: cfg.CompanyName, log: logging.New("server")}

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := http.ListenAndServe(addr, srv.routes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", s.handleQuotesList)
			r.Post("/", s.handleQuoteCreate)
			r.Post("/preview", s.handleQuotePreview)
			r.Get("/{id}", s.handleQuoteGet)
			r.Get("/{id}/text", s.handleQuoteText)
			r.Post("/{id}/status", s.handleQuoteStatus)
		})
		r.Get("/catalog/ppe", s.handleCatalogList)
		r.Post("/catalog/ppe/upsert", s.handleCatalogUpsert)
		r.Get("/rules", s.handleRulesGet)
		r.Put("/rules", s.handleRulesPut)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := migrations.Version(s.db)
	if err != nil {
		s.log.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "schemaVersion": version})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writePricingError maps engine errors to responses. Anything else is
// logged and reported as a 500.
func (s *server) writePricingError(w http.ResponseWriter, err error, fallback string) {
	var invalid *pricing.InvalidRequestError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: invalid.Field + " " + invalid.Reason, Field: invalid.Field})
		return
	}
	s.log.Error().Err(err).Msg(fallback)
	writeError(w, http.StatusInternalServerError, fallback)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
