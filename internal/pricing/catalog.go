package pricing

import "github.com/shopspring/decimal"

// MissingSKUName is the line name used when a PPE SKU is absent from the catalog.
const MissingSKUName = "SKU_NOT_FOUND"

const defaultUnit = "pz"

// CatalogItem is one stock item with its tax-inclusive unit price.
type CatalogItem struct {
	SKU              string          `json:"sku" yaml:"sku"`
	Name             string          `json:"name" yaml:"name"`
	Unit             string          `json:"unit" yaml:"unit"`
	UnitPricePlusTax decimal.Decimal `json:"unitPricePlusTax" yaml:"unitPricePlusTax"`
}

// Catalog maps SKU to item. Compute only reads it.
type Catalog map[string]CatalogItem

// NewCatalog indexes items by SKU; a later duplicate wins.
func NewCatalog(items []CatalogItem) Catalog {
	c := make(Catalog, len(items))
	for _, it := range items {
		c[it.SKU] = it
	}
	return c
}

// PPE stock-keeping identifiers priced by the PPE estimator.
const (
	SKUHelmet    = "CASCO_MATRACA"
	SKUVest      = "CHALECO_REF"
	SKUChinStrap = "BARBIQUEJO_2P"
	SKUFootwear  = "CALZADO_SEG"
	SKUEyewear   = "LENTE_BASICO"
	SKUGloves    = "GUANTE_NITRILO"
	SKUEarplugs  = "TAPON_DESECHABLE"
)

// PPEItems returns the PPE SKUs in line order with their standard
// catalog names and units. Prices are not part of this list.
func PPEItems() []CatalogItem {
	return []CatalogItem{
		{SKU: SKUHelmet, Name: "Casco con matraca", Unit: "pz"},
		{SKU: SKUVest, Name: "Chaleco reflejante", Unit: "pz"},
		{SKU: SKUChinStrap, Name: "Barbiquejo 2 puntos", Unit: "pz"},
		{SKU: SKUFootwear, Name: "Calzado de seguridad", Unit: "par"},
		{SKU: SKUEyewear, Name: "Lente de seguridad básico", Unit: "pz"},
		{SKU: SKUGloves, Name: "Guante de nitrilo", Unit: "par"},
		{SKU: SKUEarplugs, Name: "Tapón auditivo desechable", Unit: "par"},
	}
}
