package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Simplici0/cotizador/internal/pricing"
)

type storedRules struct {
	Mode      pricing.OverrideMode `json:"mode"`
	Overrides map[string]any       `json:"overrides"`
}

type rulesResponse struct {
	storedRules
	Effective map[string]any `json:"effective"`
}

func (s *server) handleRulesGet(w http.ResponseWriter, r *http.Request) {
	rules, stored, err := s.loadRules(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load rules")
		writeError(w, http.StatusInternalServerError, "failed to load pricing rules")
		return
	}
	writeJSON(w, http.StatusOK, rulesResponse{storedRules: stored, Effective: rules.Overrides()})
}

func (s *server) handleRulesPut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode      string          `json:"mode"`
		Overrides json.RawMessage `json:"overrides"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	overrides, err := decodeOverrides(body.Overrides)
	if err != nil {
		writeError(w, http.StatusBadRequest, "overrides debe ser un objeto")
		return
	}
	mode, err := pricing.ParseOverrideMode(body.Mode)
	if err != nil {
		writeRulesError(w, err)
		return
	}
	rules, err := pricing.ResolveRules(overrides, mode)
	if err != nil {
		writeRulesError(w, err)
		return
	}

	stored := storedRules{Mode: mode, Overrides: overrides}
	if err := s.saveRules(r.Context(), stored); err != nil {
		s.log.Error().Err(err).Msg("save rules")
		writeError(w, http.StatusInternalServerError, "failed to save pricing rules")
		return
	}
	writeJSON(w, http.StatusOK, rulesResponse{storedRules: stored, Effective: rules.Overrides()})
}

func writeRulesError(w http.ResponseWriter, err error) {
	var cfgErr *pricing.ConfigurationError
	if errors.As(err, &cfgErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: cfgErr.Error(), Field: cfgErr.Field})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// decodeOverrides keeps numbers as json.Number so decimal leaves survive
// without a float round trip.
func decodeOverrides(raw json.RawMessage) (map[string]any, error) {
	overrides := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return overrides, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// loadRules resolves the stored overrides. Invalid stored rules are a
// server-side error.
func (s *server) loadRules(ctx context.Context) (pricing.RuleSet, storedRules, error) {
	var raw, mode string
	err := s.db.QueryRowContext(ctx, `
		SELECT overrides_json, override_mode
		FROM pricing_rules
		WHERE id = 1
	`).Scan(&raw, &mode)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.DefaultRules(), storedRules{Mode: pricing.OverrideMerge, Overrides: map[string]any{}}, nil
	}
	if err != nil {
		return pricing.RuleSet{}, storedRules{}, fmt.Errorf("query pricing rules: %w", err)
	}

	overrides, err := decodeOverrides(json.RawMessage(raw))
	if err != nil {
		return pricing.RuleSet{}, storedRules{}, fmt.Errorf("decode stored overrides: %w", err)
	}
	parsed, err := pricing.ParseOverrideMode(mode)
	if err != nil {
		return pricing.RuleSet{}, storedRules{}, fmt.Errorf("stored override mode: %w", err)
	}
	rules, err := pricing.ResolveRules(overrides, parsed)
	if err != nil {
		return pricing.RuleSet{}, storedRules{}, fmt.Errorf("resolve stored rules: %w", err)
	}
	return rules, storedRules{Mode: parsed, Overrides: overrides}, nil
}

func (s *server) saveRules(ctx context.Context, stored storedRules) error {
	raw, err := json.Marshal(stored.Overrides)
	if err != nil {
		return fmt.Errorf("encode overrides: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pricing_rules (id, overrides_json, override_mode, updated_at)
		VALUES (1, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			overrides_json = excluded.overrides_json,
			override_mode = excluded.override_mode,
			updated_at = excluded.updated_at
	`, string(raw), string(stored.Mode))
	if err != nil {
		return fmt.Errorf("upsert pricing rules: %w", err)
	}
	return nil
}
