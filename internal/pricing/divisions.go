package pricing

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// DivisionResult is the cost, billed price and profit of one division.
type DivisionResult struct {
	Cost   decimal.Decimal `json:"cost"`
	Price  decimal.Decimal `json:"price"`
	Profit decimal.Decimal `json:"profit"`
}

func newDivision(cost, price decimal.Decimal) DivisionResult {
	return DivisionResult{Cost: cost, Price: price, Profit: price.Sub(cost)}
}

// passThrough is a division billed at cost.
func passThrough(amount decimal.Decimal) DivisionResult {
	return newDivision(amount, amount)
}

func (d DivisionResult) rounded() DivisionResult {
	return DivisionResult{Cost: round2(d.Cost), Price: round2(d.Price), Profit: round2(d.Profit)}
}

// WeldingResult adds the unit count and the consumables line, which is
// billed at cost and kept out of Cost/Price.
type WeldingResult struct {
	DivisionResult
	Units       int64           `json:"units"`
	Consumables decimal.Decimal `json:"consumables"`
}

type PPELine struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Qty       decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineCost  decimal.Decimal `json:"lineCost"`
}

// PPEResult totals are already rounded to cents; Lines are display values.
type PPEResult struct {
	DivisionResult
	MarkupPct decimal.Decimal `json:"markupPct"`
	Lines     []PPELine       `json:"-"`
}

type CommercializationLine struct {
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Unit        string          `json:"unit"`
	VendorCost  decimal.Decimal `json:"vendorCost"`
	MarginPct   decimal.Decimal `json:"marginPct"`
	LineCost    decimal.Decimal `json:"lineCost"`
	LinePrice   decimal.Decimal `json:"linePrice"`
	LineProfit  decimal.Decimal `json:"lineProfit"`
}

// CommercializationResult totals are already rounded to cents.
type CommercializationResult struct {
	DivisionResult
	Lines []CommercializationLine `json:"-"`
}

type LogisticsResult struct {
	DivisionResult
	Rooms   int64           `json:"rooms"`
	Hotel   decimal.Decimal `json:"hotel"`
	PerDiem decimal.Decimal `json:"perDiem"`
	Travel  decimal.Decimal `json:"travel"`
}

// EstimateLabor bills labor at cost: weekly rate times weeks per month,
// per person per month.
func EstimateLabor(headcount int64, months decimal.Decimal, rules LaborRules) DivisionResult {
	monthly := rules.WeeklyRate.Mul(rules.WeeksPerMonth)
	return passThrough(monthly.Mul(months).Mul(decimal.NewFromInt(headcount)))
}

// WeldingUnits is the number of welding units needed, one per ten welders.
func WeldingUnits(welders int64) int64 {
	if welders <= 0 {
		return 0
	}
	return ceilDiv(welders, 10)
}

// ceilDiv rounds n/d up for n >= 0 and d > 0 without overflowing.
func ceilDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

func EstimateWelding(welders int64, months decimal.Decimal, rules WeldingRules, consumablesPerWelderMonth decimal.Decimal) WeldingResult {
	units := decimal.NewFromInt(WeldingUnits(welders))
	cost := units.Mul(rules.Per10UnitsMonth.Cost).Mul(months)
	price := units.Mul(rules.Per10UnitsMonth.Price).Mul(months)
	return WeldingResult{
		DivisionResult: newDivision(cost, price),
		Units:          WeldingUnits(welders),
		Consumables:    decimal.NewFromInt(welders).Mul(consumablesPerWelderMonth).Mul(months),
	}
}

// EstimateCertification prices DC3 certificates. Each package costs three
// individual certificates.
func EstimateCertification(people, packages int64, rules CertificationRules) DivisionResult {
	p := decimal.NewFromInt(people)
	k := decimal.NewFromInt(packages)
	cost := p.Mul(rules.UnitCost).Add(k.Mul(rules.UnitCost).Mul(decimal.NewFromInt(3)))
	price := p.Mul(rules.UnitSell).Add(k.Mul(rules.PackagePrice))
	return newDivision(cost, price)
}

func EstimateMedical(enabled bool, headcount int64, rules MedicalRules) DivisionResult {
	if !enabled {
		return DivisionResult{}
	}
	h := decimal.NewFromInt(headcount)
	return newDivision(h.Mul(rules.Cost), h.Mul(rules.Sell))
}

// PPEQuantities returns the quantity of each PPE SKU for a crew, in line order.
func PPEQuantities(headcount int64, months decimal.Decimal, rules PPERules) []PPELine {
	h := decimal.NewFromInt(headcount)
	monthly := h.Mul(decimal.NewFromInt(4)).Mul(months)
	return []PPELine{
		{SKU: SKUHelmet, Qty: h},
		{SKU: SKUVest, Qty: h},
		{SKU: SKUChinStrap, Qty: h},
		{SKU: SKUFootwear, Qty: h},
		{SKU: SKUEyewear, Qty: monthly},
		{SKU: SKUGloves, Qty: monthly},
		{SKU: SKUEarplugs, Qty: h.Mul(rules.WorkingDaysPerMonth.Mul(months))},
	}
}

// EstimatePPE prices the PPE kit from the catalog. A SKU missing from the
// catalog is priced at zero under MissingSKUName instead of failing.
func EstimatePPE(enabled bool, headcount int64, months decimal.Decimal, rules PPERules, catalog Catalog) PPEResult {
	if !enabled {
		return PPEResult{MarkupPct: rules.MarkupPct, Lines: []PPELine{}}
	}

	lines := PPEQuantities(headcount, months, rules)
	cost := decimal.Zero
	for i := range lines {
		line := &lines[i]
		item, ok := catalog[line.SKU]
		if ok {
			line.Name = item.Name
			line.Unit = item.Unit
			line.UnitPrice = item.UnitPricePlusTax
		} else {
			line.Name = MissingSKUName
			line.UnitPrice = decimal.Zero
		}
		if line.Unit == "" {
			line.Unit = defaultUnit
		}
		line.LineCost = line.UnitPrice.Mul(line.Qty)
		cost = cost.Add(line.LineCost)

		line.Qty = round2(line.Qty)
		line.UnitPrice = round2(line.UnitPrice)
		line.LineCost = round2(line.LineCost)
	}

	price := cost.Mul(one.Add(rules.MarkupPct))
	return PPEResult{
		DivisionResult: DivisionResult{
			Cost:   round2(cost),
			Price:  round2(price),
			Profit: round2(price.Sub(cost)),
		},
		MarkupPct: rules.MarkupPct,
		Lines:     lines,
	}
}

// EstimateCommercialization marks up resold items by their own margin or
// the rule default.
func EstimateCommercialization(c Commercialization, rules CommercializationRules) CommercializationResult {
	if !c.Enabled {
		return CommercializationResult{Lines: []CommercializationLine{}}
	}

	cost := decimal.Zero
	price := decimal.Zero
	lines := make([]CommercializationLine, 0, len(c.Items))
	for _, it := range c.Items {
		margin := rules.DefaultMarginPct
		if it.MarginPct != nil {
			margin = *it.MarginPct
		}
		lineCost := it.VendorCost.Mul(it.Qty)
		linePrice := lineCost.Mul(one.Add(margin))
		cost = cost.Add(lineCost)
		price = price.Add(linePrice)

		unit := it.Unit
		if unit == "" {
			unit = defaultUnit
		}
		lines = append(lines, CommercializationLine{
			Description: it.Description,
			Qty:         it.Qty,
			Unit:        unit,
			VendorCost:  it.VendorCost,
			MarginPct:   margin,
			LineCost:    round2(lineCost),
			LinePrice:   round2(linePrice),
			LineProfit:  round2(linePrice.Sub(lineCost)),
		})
	}

	return CommercializationResult{
		DivisionResult: DivisionResult{
			Cost:   round2(cost),
			Price:  round2(price),
			Profit: round2(price.Sub(cost)),
		},
		Lines: lines,
	}
}

// EstimateProjectManagement bills the platform fee per person per month, at cost.
func EstimateProjectManagement(enabled bool, headcount int64, months decimal.Decimal, rules PlatformManagementRules) DivisionResult {
	if !enabled {
		return DivisionResult{}
	}
	return passThrough(rules.FeePerPersonMonth.Mul(decimal.NewFromInt(headcount)).Mul(months))
}

// EstimateComplianceProgram bills the compliance fee per project month, at cost.
func EstimateComplianceProgram(enabled bool, months decimal.Decimal, rules ComplianceProgramRules) DivisionResult {
	if !enabled {
		return DivisionResult{}
	}
	return passThrough(rules.FeePerProjectMonth.Mul(months))
}

// EstimateLogistics bills hotel, per diem and fares at cost. Rooms are
// shared by PeoplePerRoom travelers.
func EstimateLogistics(l Logistics) LogisticsResult {
	if !l.Enabled || l.PeoplePerRoom <= 0 {
		return LogisticsResult{}
	}
	travelers := decimal.NewFromInt(l.TravelHeadcount)
	var rooms int64
	if l.TravelHeadcount > 0 {
		rooms = ceilDiv(l.TravelHeadcount, l.PeoplePerRoom)
	}

	hotel := decimal.NewFromInt(rooms).Mul(l.HotelRatePerNight).Mul(decimal.NewFromInt(l.HotelNights))
	perDiem := travelers.Mul(l.PerDiemRatePerDay).Mul(decimal.NewFromInt(l.PerDiemDays))
	travel := travelers.Mul(l.RoundTripFarePerPerson)
	return LogisticsResult{
		DivisionResult: passThrough(hotel.Add(perDiem).Add(travel)),
		Rooms:          rooms,
		Hotel:          hotel,
		PerDiem:        perDiem,
		Travel:         travel,
	}
}
