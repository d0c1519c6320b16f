package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/cotizador/internal/pricing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadRules_MergesOverrides(t *testing.T) {
	path := writeFile(t, "rules.yaml", `
labor:
  weeklyRate: 7000
medical:
  sell: "400"
`)

	rules, err := LoadRules(path, pricing.OverrideMerge)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if !rules.Labor.WeeklyRate.Equal(decimal.NewFromInt(7000)) {
		t.Fatalf("weeklyRate = %s", rules.Labor.WeeklyRate)
	}
	if !rules.Labor.WeeksPerMonth.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("weeksPerMonth = %s", rules.Labor.WeeksPerMonth)
	}
	if !rules.Medical.Sell.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("medical.sell = %s", rules.Medical.Sell)
	}
}

func TestLoadRules_ReplaceRejectsPartialCategory(t *testing.T) {
	path := writeFile(t, "rules.yaml", "medical:\n  sell: 400\n")

	_, err := LoadRules(path, pricing.OverrideReplace)
	if !errors.Is(err, pricing.ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
}

func TestLoadRules_EmptyPathIsDefault(t *testing.T) {
	rules, err := LoadRules("", pricing.OverrideMerge)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if !rules.ManagementFeePct.Equal(decimal.RequireFromString("0.15")) {
		t.Fatalf("managementFeePct = %s", rules.ManagementFeePct)
	}
}

func TestLoadCatalog(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
items:
  - sku: CASCO_MATRACA
    name: Casco con matraca
    unit: pz
    unitPricePlusTax: 185.50
  - sku: TAPON_DESECHABLE
    name: Tapón
    unit: par
    unitPricePlusTax: "1.20"
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("catalog has %d items, want 2", len(catalog))
	}
	if got := catalog[pricing.SKUHelmet].UnitPricePlusTax; !got.Equal(decimal.RequireFromString("185.5")) {
		t.Fatalf("helmet price = %s", got)
	}
}

func TestLoadCatalog_RejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "catalog.yaml", "items:\n  - sku: X\n    price: 3\n")

	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadRequest_KeepsDefaults(t *testing.T) {
	path := writeFile(t, "request.yaml", `
clientName: Refinería
projectName: Paro anual
peopleByRole:
  soldador: 8
  ayudante: 4
weldersCount: 8
medical:
  enabled: false
commercialization:
  enabled: true
  items:
    - description: Andamio
      qty: 2
      vendorCost: 1500
      marginPct: 0.3
`)

	req, err := LoadRequest(path)
	if err != nil {
		t.Fatalf("LoadRequest: %v", err)
	}
	if req.Headcount() != 12 {
		t.Fatalf("headcount = %d, want 12", req.Headcount())
	}
	if req.PaymentTerms != "NETO 30" || !req.DurationMonths.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("defaults lost: terms=%q months=%s", req.PaymentTerms, req.DurationMonths)
	}
	if req.Medical.Enabled || !req.PPE.Enabled {
		t.Fatalf("toggles = medical %v ppe %v", req.Medical.Enabled, req.PPE.Enabled)
	}
	items := req.Commercialization.Items
	if len(items) != 1 || items[0].MarginPct == nil || !items[0].MarginPct.Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("items = %+v", items)
	}
}

func TestLoadRequest_MissingFile(t *testing.T) {
	_, err := LoadRequest(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read request file") {
		t.Fatalf("error = %v", err)
	}
}
