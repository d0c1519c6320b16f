package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/report"
)

const statusDraft = "DRAFT"

var quoteStatuses = map[string]bool{
	statusDraft: true,
	"SENT":      true,
	"APPROVED":  true,
	"REJECTED":  true,
	"PROJECT":   true,
}

var errNotFound = errors.New("not found")

type quoteListItem struct {
	ID          string          `json:"id"`
	CreatedAt   string          `json:"createdAt"`
	ClientName  string          `json:"clientName"`
	ProjectName string          `json:"projectName"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
}

// quoteRecord is a stored quote. The JSON snapshots are returned as saved;
// they are never recalculated.
type quoteRecord struct {
	ID             string          `json:"id"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
	ClientName     string          `json:"clientName"`
	ProjectName    string          `json:"projectName"`
	Location       string          `json:"location"`
	WorkType       string          `json:"workType"`
	DurationMonths decimal.Decimal `json:"durationMonths"`
	PaymentTerms   string          `json:"paymentTerms"`
	Status         string          `json:"status"`
	Input          json.RawMessage `json:"input"`
	ClientQuote    json.RawMessage `json:"clientQuote"`
	Internal       json.RawMessage `json:"internal"`
	Totals         pricing.Totals  `json:"totals"`
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.listQuotes(query)
	if err != nil {
		s.log.Error().Err(err).Msg("list quotes")
		writeError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) handleQuotePreview(w http.ResponseWriter, r *http.Request) {
	_, result, ok := s.computeFromBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	req, result, ok := s.computeFromBody(w, r)
	if !ok {
		return
	}

	id, err := s.insertQuote(r.Context(), req, result)
	if err != nil {
		s.log.Error().Err(err).Msg("insert quote")
		writeError(w, http.StatusInternalServerError, "failed to save quote")
		return
	}
	record, err := s.getQuote(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Str("quote_id", id).Msg("reload quote")
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}
	s.log.Info().Str("quote_id", id).Str("total", result.Totals.Total.String()).Msg("quote created")
	writeJSON(w, http.StatusCreated, record)
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	record, ok := s.quoteFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	record, ok := s.quoteFromPath(w, r)
	if !ok {
		return
	}

	var quote pricing.ClientQuote
	if err := json.Unmarshal(record.ClientQuote, &quote); err != nil {
		s.log.Error().Err(err).Str("quote_id", record.ID).Msg("decode client quote")
		writeError(w, http.StatusInternalServerError, "failed to render quote")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = report.WriteClientQuote(w, quote)
}

func (s *server) handleQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	if !quoteStatuses[status] {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "status no es válido", Field: "status"})
		return
	}

	if err := s.updateQuoteStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, errNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error().Err(err).Str("quote_id", id).Msg("update quote status")
		writeError(w, http.StatusInternalServerError, "failed to update quote")
		return
	}
	record, err := s.getQuote(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Str("quote_id", id).Msg("reload quote")
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *server) quoteFromPath(w http.ResponseWriter, r *http.Request) (quoteRecord, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return quoteRecord{}, false
	}
	record, err := s.getQuote(r.Context(), id)
	if errors.Is(err, errNotFound) {
		http.NotFound(w, r)
		return quoteRecord{}, false
	}
	if err != nil {
		s.log.Error().Err(err).Str("quote_id", id).Msg("get quote")
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return quoteRecord{}, false
	}
	return record, true
}

// computeFromBody decodes a request onto the form defaults, fills the
// company from configuration and prices it with the stored rules and
// catalog. It writes the error response itself when ok is false.
func (s *server) computeFromBody(w http.ResponseWriter, r *http.Request) (pricing.Request, *pricing.Result, bool) {
	req, err := decodeQuoteRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return pricing.Request{}, nil, false
	}
	if strings.TrimSpace(req.Company) == "" {
		req.Company = s.company
	}

	rules, _, err := s.loadRules(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load rules")
		writeError(w, http.StatusInternalServerError, "failed to load pricing rules")
		return pricing.Request{}, nil, false
	}
	catalog, err := s.loadCatalog(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load catalog")
		writeError(w, http.StatusInternalServerError, "failed to load catalog")
		return pricing.Request{}, nil, false
	}

	result, err := pricing.Compute(req, rules, catalog)
	if err != nil {
		s.writePricingError(w, err, "failed to compute quote")
		return pricing.Request{}, nil, false
	}
	return req, result, true
}

func decodeQuoteRequest(w http.ResponseWriter, r *http.Request) (pricing.Request, error) {
	req := pricing.NewRequest()
	if err := decodeJSON(w, r, &req); err != nil {
		return pricing.Request{}, fmt.Errorf("invalid json body: %w", err)
	}
	return req, nil
}

func (s *server) insertQuote(ctx context.Context, req pricing.Request, result *pricing.Result) (string, error) {
	input, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode quote input: %w", err)
	}
	clientQuote, err := json.Marshal(result.ClientQuote)
	if err != nil {
		return "", fmt.Errorf("encode client quote: %w", err)
	}
	internal, err := json.Marshal(result.Internal)
	if err != nil {
		return "", fmt.Errorf("encode internal breakdown: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			id,
			client_name,
			project_name,
			location,
			work_type,
			duration_months,
			payment_terms,
			status,
			input_json,
			client_quote_json,
			internal_json,
			subtotal,
			tax,
			total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		req.ClientName,
		req.ProjectName,
		req.Location,
		req.WorkType,
		req.DurationMonths.String(),
		req.PaymentTerms,
		statusDraft,
		string(input),
		string(clientQuote),
		string(internal),
		result.Totals.Subtotal.String(),
		result.Totals.Tax.String(),
		result.Totals.Total.String(),
	)
	if err != nil {
		return "", fmt.Errorf("insert quote: %w", err)
	}
	return id, nil
}

func (s *server) listQuotes(query string) ([]quoteListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT
			id,
			created_at,
			client_name,
			project_name,
			status,
			total
		FROM quotes
		WHERE (? = '' OR client_name LIKE ? OR project_name LIKE ?)
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]quoteListItem, 0)
	for rows.Next() {
		var item quoteListItem
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.ClientName, &item.ProjectName, &item.Status, &item.Total); err != nil {
			return nil, err
		}
		quotes = append(quotes, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (s *server) getQuote(ctx context.Context, id string) (quoteRecord, error) {
	var rec quoteRecord
	var input, clientQuote, internalRaw string
	err := s.db.QueryRowContext(ctx, `
		SELECT
			id,
			created_at,
			updated_at,
			client_name,
			project_name,
			location,
			work_type,
			duration_months,
			payment_terms,
			status,
			input_json,
			client_quote_json,
			internal_json,
			subtotal,
			tax,
			total
		FROM quotes
		WHERE id = ?
	`, id).Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.ClientName,
		&rec.ProjectName,
		&rec.Location,
		&rec.WorkType,
		&rec.DurationMonths,
		&rec.PaymentTerms,
		&rec.Status,
		&input,
		&clientQuote,
		&internalRaw,
		&rec.Totals.Subtotal,
		&rec.Totals.Tax,
		&rec.Totals.Total,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return quoteRecord{}, errNotFound
	}
	if err != nil {
		return quoteRecord{}, fmt.Errorf("query quote %s: %w", id, err)
	}

	rec.Input = json.RawMessage(input)
	rec.ClientQuote = json.RawMessage(clientQuote)
	rec.Internal = json.RawMessage(internalRaw)
	return rec, nil
}

func (s *server) updateQuoteStatus(ctx context.Context, id, status string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE quotes
		SET
			status = ?,
			updated_at = datetime('now')
		WHERE id = ?
	`, status, id)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}
