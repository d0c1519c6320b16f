package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestWeldingUnits_StepFunction(t *testing.T) {
	cases := map[int64]int64{0: 0, -3: 0, 1: 1, 9: 1, 10: 1, 11: 2, 20: 2, 21: 3}
	for welders, want := range cases {
		if got := WeldingUnits(welders); got != want {
			t.Fatalf("WeldingUnits(%d) = %d, want %d", welders, got, want)
		}
	}

	rules := DefaultRules()
	months := decimal.NewFromInt(1)
	w1 := EstimateWelding(1, months, rules.Welding, rules.WeldingConsumablesPerWelderMonth)
	w10 := EstimateWelding(10, months, rules.Welding, rules.WeldingConsumablesPerWelderMonth)
	w11 := EstimateWelding(11, months, rules.Welding, rules.WeldingConsumablesPerWelderMonth)

	money(t, "cost(1)", w1.Cost, "18446.96")
	money(t, "cost(10)", w10.Cost, "18446.96")
	money(t, "cost(11)", w11.Cost, "36893.92")
	money(t, "price(11)", w11.Price, "42426")
	money(t, "consumables(11)", w11.Consumables, "41800")
}

func TestEstimateCertification_PackagesCostThreeCertificates(t *testing.T) {
	got := EstimateCertification(4, 2, DefaultRules().Certification)

	money(t, "cost", got.Cost, "1000")
	money(t, "price", got.Price, "5000")
	money(t, "profit", got.Profit, "4000")
}

func TestEstimatePPE_MissingSKUIsTolerated(t *testing.T) {
	catalog := testCatalog()
	delete(catalog, SKUVest)

	got := EstimatePPE(true, 10, decimal.NewFromInt(1), DefaultRules().PPE, catalog)

	if len(got.Lines) != 7 {
		t.Fatalf("lines = %d, want 7", len(got.Lines))
	}
	vest := got.Lines[1]
	if vest.SKU != SKUVest || vest.Name != MissingSKUName || vest.Unit != "pz" {
		t.Fatalf("vest line = %+v", vest)
	}
	money(t, "vest unitPrice", vest.UnitPrice, "0")
	money(t, "vest lineCost", vest.LineCost, "0")
	money(t, "ppe cost", got.Cost, "1360")
	money(t, "ppe price", got.Price, "1700")
}

func TestEstimatePPE_LineOrderAndQuantities(t *testing.T) {
	got := EstimatePPE(true, 3, decimal.RequireFromString("1.5"), DefaultRules().PPE, testCatalog())

	want := []struct {
		sku string
		qty string
	}{
		{SKUHelmet, "3"},
		{SKUVest, "3"},
		{SKUChinStrap, "3"},
		{SKUFootwear, "3"},
		{SKUEyewear, "18"},
		{SKUGloves, "18"},
		{SKUEarplugs, "117"},
	}
	for i, w := range want {
		if got.Lines[i].SKU != w.sku {
			t.Fatalf("line %d sku = %s, want %s", i, got.Lines[i].SKU, w.sku)
		}
		money(t, w.sku+" qty", got.Lines[i].Qty, w.qty)
	}
	money(t, "markupPct", got.MarkupPct, "0.25")
}

func TestEstimatePPE_Disabled(t *testing.T) {
	got := EstimatePPE(false, 10, decimal.NewFromInt(1), DefaultRules().PPE, testCatalog())

	if len(got.Lines) != 0 || !got.Cost.IsZero() || !got.Price.IsZero() {
		t.Fatalf("disabled ppe = %+v", got)
	}
}

func TestEstimateCommercialization_MarginOverride(t *testing.T) {
	margin := decimal.RequireFromString("0.5")
	c := Commercialization{
		Enabled: true,
		Items: []CommercializationItem{
			{Description: "Andamio", Qty: decimal.NewFromInt(2), VendorCost: decimal.NewFromInt(100)},
			{Description: "Grúa", Qty: decimal.NewFromInt(1), Unit: "servicio", VendorCost: decimal.NewFromInt(1000), MarginPct: &margin},
		},
	}

	got := EstimateCommercialization(c, DefaultRules().Commercialization)

	money(t, "cost", got.Cost, "1200")
	money(t, "price", got.Price, "1740")
	money(t, "profit", got.Profit, "540")
	if len(got.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(got.Lines))
	}
	money(t, "default margin", got.Lines[0].MarginPct, "0.20")
	if got.Lines[0].Unit != "pz" || got.Lines[1].Unit != "servicio" {
		t.Fatalf("units = %q, %q", got.Lines[0].Unit, got.Lines[1].Unit)
	}
	money(t, "override line price", got.Lines[1].LinePrice, "1500")
	money(t, "override line profit", got.Lines[1].LineProfit, "500")
}

func TestEstimateLogistics_RoomsRoundUp(t *testing.T) {
	l := NewRequest().Logistics
	l.Enabled = true
	l.TravelHeadcount = 5
	l.HotelNights = 3
	l.PerDiemDays = 4

	got := EstimateLogistics(l)

	if got.Rooms != 3 {
		t.Fatalf("rooms = %d, want 3", got.Rooms)
	}
	money(t, "hotel", got.Hotel, "10800")
	money(t, "perDiem", got.PerDiem, "7000")
	money(t, "travel", got.Travel, "31710")
	money(t, "cost", got.Cost, "49510")
	money(t, "price", got.Price, "49510")
	money(t, "profit", got.Profit, "0")
}

func TestFeesAreBilledAtCost(t *testing.T) {
	rules := DefaultRules()
	months := decimal.RequireFromString("2")

	pm := EstimateProjectManagement(true, 7, months, rules.PlatformManagement)
	money(t, "pm cost", pm.Cost, "2520")
	money(t, "pm price", pm.Price, "2520")

	iso := EstimateComplianceProgram(true, months, rules.ComplianceProgram)
	money(t, "compliance cost", iso.Cost, "7000")

	if off := EstimateComplianceProgram(false, months, rules.ComplianceProgram); !off.Price.IsZero() {
		t.Fatalf("disabled compliance price = %s", off.Price)
	}
}

func TestRiskFlags(t *testing.T) {
	cases := []struct {
		terms     string
		headcount int64
		want      []string
	}{
		{"NETO 30 dias", 10, []string{RiskCollection}},
		{"neto 30", 10, []string{RiskCollection}},
		{"CONTADO", 10, []string{}},
		{"CONTADO", 51, []string{RiskLargeProject}},
		{"CONTADO", 50, []string{}},
		{"NETO 30", 51, []string{RiskCollection, RiskLargeProject}},
	}
	for _, tc := range cases {
		got := RiskFlags(tc.terms, tc.headcount)
		if len(got) != len(tc.want) {
			t.Fatalf("RiskFlags(%q, %d) = %v, want %v", tc.terms, tc.headcount, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("RiskFlags(%q, %d) = %v, want %v", tc.terms, tc.headcount, got, tc.want)
			}
		}
	}
}

func TestCeilDiv_NoOverflow(t *testing.T) {
	if got, want := WeldingUnits(math.MaxInt64), int64(math.MaxInt64/10+1); got != want {
		t.Fatalf("WeldingUnits(MaxInt64) = %d, want %d", got, want)
	}

	l := NewRequest().Logistics
	l.Enabled = true
	l.TravelHeadcount = math.MaxInt64
	if got, want := EstimateLogistics(l).Rooms, int64(math.MaxInt64/2+1); got != want {
		t.Fatalf("rooms = %d, want %d", got, want)
	}
}
