package seed

import (
	"database/sql"
	"fmt"

	"github.com/Simplici0/cotizador/internal/pricing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run seeds the PPE catalog and the pricing-rules singleton. It is
// idempotent: existing rows, including prices set by operators, are kept.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, item := range pricing.PPEItems() {
		if err := ensureCatalogItem(tx, item, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	if err := ensurePricingRules(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureCatalogItem(tx *sql.Tx, item pricing.CatalogItem, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM ppe_catalog WHERE sku = ? LIMIT 1)`, item.SKU).Scan(&exists); err != nil {
		return fmt.Errorf("check catalog item %s existence: %w", item.SKU, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO ppe_catalog (sku, name, unit, unit_price_plus_tax)
		VALUES (?, ?, ?, ?)
	`, item.SKU, item.Name, item.Unit, item.UnitPricePlusTax.String()); err != nil {
		return fmt.Errorf("insert catalog item %s: %w", item.SKU, err)
	}
	stats.Inserts++
	return nil
}

func ensurePricingRules(tx *sql.Tx, stats *Stats) error {
	res, err := tx.Exec(`
		INSERT INTO pricing_rules (id, overrides_json, override_mode)
		VALUES (1, '{}', ?)
		ON CONFLICT(id) DO NOTHING
	`, string(pricing.OverrideMerge))
	if err != nil {
		return fmt.Errorf("insert pricing rules singleton: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		stats.Inserts++
	}
	return nil
}
