package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Simplici0/cotizador/internal/pricing"
)

type catalogUpsertRequest struct {
	Items []pricing.CatalogItem `json:"items"`
}

type catalogUpsertResponse struct {
	Inserts int `json:"inserts"`
	Updates int `json:"updates"`
}

func (s *server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	items, err := s.listCatalog(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list catalog")
		writeError(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleCatalogUpsert(w http.ResponseWriter, r *http.Request) {
	var body catalogUpsertRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(body.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items es requerido")
		return
	}
	for i := range body.Items {
		if err := normalizeCatalogItem(&body.Items[i]); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("items[%d]: %s", i, err))
			return
		}
	}

	stats, err := s.upsertCatalog(r.Context(), body.Items)
	if err != nil {
		s.log.Error().Err(err).Msg("upsert catalog")
		writeError(w, http.StatusInternalServerError, "failed to update catalog")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func normalizeCatalogItem(item *pricing.CatalogItem) error {
	item.SKU = strings.TrimSpace(item.SKU)
	item.Name = strings.TrimSpace(item.Name)
	item.Unit = strings.TrimSpace(item.Unit)
	if item.SKU == "" {
		return fmt.Errorf("sku es requerido")
	}
	if item.Name == "" {
		return fmt.Errorf("name es requerido")
	}
	if item.Unit == "" {
		item.Unit = "pz"
	}
	if item.UnitPricePlusTax.IsNegative() {
		return fmt.Errorf("unitPricePlusTax debe ser mayor o igual a 0")
	}
	return nil
}

func (s *server) listCatalog(ctx context.Context) ([]pricing.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, name, unit, unit_price_plus_tax
		FROM ppe_catalog
		ORDER BY sku
	`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	items := make([]pricing.CatalogItem, 0)
	for rows.Next() {
		var item pricing.CatalogItem
		if err := rows.Scan(&item.SKU, &item.Name, &item.Unit, &item.UnitPricePlusTax); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog: %w", err)
	}
	return items, nil
}

// loadCatalog snapshots the catalog for one computation.
func (s *server) loadCatalog(ctx context.Context) (pricing.Catalog, error) {
	items, err := s.listCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.NewCatalog(items), nil
}

func (s *server) upsertCatalog(ctx context.Context, items []pricing.CatalogItem) (catalogUpsertResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return catalogUpsertResponse{}, fmt.Errorf("begin catalog transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stats catalogUpsertResponse
	for _, item := range items {
		result, err := tx.ExecContext(ctx, `
			UPDATE ppe_catalog
			SET
				name = ?,
				unit = ?,
				unit_price_plus_tax = ?,
				updated_at = datetime('now')
			WHERE sku = ?
		`, item.Name, item.Unit, item.UnitPricePlusTax.String(), item.SKU)
		if err != nil {
			return catalogUpsertResponse{}, fmt.Errorf("update catalog item %s: %w", item.SKU, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return catalogUpsertResponse{}, fmt.Errorf("update catalog item %s: %w", item.SKU, err)
		}
		if affected > 0 {
			stats.Updates++
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ppe_catalog (sku, name, unit, unit_price_plus_tax)
			VALUES (?, ?, ?, ?)
		`, item.SKU, item.Name, item.Unit, item.UnitPricePlusTax.String()); err != nil {
			return catalogUpsertResponse{}, fmt.Errorf("insert catalog item %s: %w", item.SKU, err)
		}
		stats.Inserts++
	}

	if err := tx.Commit(); err != nil {
		return catalogUpsertResponse{}, fmt.Errorf("commit catalog transaction: %w", err)
	}
	return stats, nil
}
