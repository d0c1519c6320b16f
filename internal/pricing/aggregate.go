package pricing

import "github.com/shopspring/decimal"

var (
	taxRate = decimal.RequireFromString("0.16")
	hundred = decimal.NewFromInt(100)
)

// TaxRate returns the fixed value-added tax rate applied to the subtotal.
func TaxRate() decimal.Decimal { return taxRate }

// Divisions groups the result of every division estimator.
type Divisions struct {
	Labor             DivisionResult          `json:"labor"`
	Welding           WeldingResult           `json:"welding"`
	Certification     DivisionResult          `json:"certification"`
	Medical           DivisionResult          `json:"medical"`
	PPE               PPEResult               `json:"ppe"`
	Commercialization CommercializationResult `json:"commercialization"`
	ProjectManagement DivisionResult          `json:"projectManagement"`
	ComplianceProgram DivisionResult          `json:"complianceProgram"`
	Logistics         LogisticsResult         `json:"logistics"`
}

// Aggregate holds the unrounded roll-up of all divisions.
type Aggregate struct {
	DirectRealCost       decimal.Decimal
	PricingBase          decimal.Decimal
	ManagementFee        decimal.Decimal
	Subtotal             decimal.Decimal
	Tax                  decimal.Decimal
	Total                decimal.Decimal
	GrossProfitBeforeTax decimal.Decimal
	MarginPct            decimal.Decimal
}

// AggregateDivisions sums division costs into the direct real cost and
// billed prices into the pricing base, then applies the management fee
// and tax. Welding consumables count on both sides.
func AggregateDivisions(d Divisions, managementFeePct decimal.Decimal) Aggregate {
	costs := []decimal.Decimal{
		d.Labor.Cost,
		d.Welding.Cost,
		d.Welding.Consumables,
		d.Certification.Cost,
		d.Medical.Cost,
		d.PPE.Cost,
		d.Commercialization.Cost,
		d.ProjectManagement.Cost,
		d.ComplianceProgram.Cost,
		d.Logistics.Cost,
	}
	prices := []decimal.Decimal{
		d.Labor.Price,
		d.Welding.Price,
		d.Welding.Consumables,
		d.Certification.Price,
		d.Medical.Price,
		d.PPE.Price,
		d.Commercialization.Price,
		d.ProjectManagement.Price,
		d.ComplianceProgram.Price,
		d.Logistics.Price,
	}

	var a Aggregate
	a.DirectRealCost = decimal.Sum(decimal.Zero, costs...)
	a.PricingBase = decimal.Sum(decimal.Zero, prices...)
	a.ManagementFee = a.PricingBase.Mul(managementFeePct)
	a.Subtotal = a.PricingBase.Add(a.ManagementFee)
	a.Tax = a.Subtotal.Mul(taxRate)
	a.Total = a.Subtotal.Add(a.Tax)
	a.GrossProfitBeforeTax = a.Subtotal.Sub(a.DirectRealCost)
	if a.Subtotal.IsPositive() {
		a.MarginPct = a.GrossProfitBeforeTax.Div(a.Subtotal).Mul(hundred)
	}
	return a
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// rounded returns the divisions with every monetary value at cents.
func (d Divisions) rounded() Divisions {
	out := d
	out.Labor = d.Labor.rounded()
	out.Welding.DivisionResult = d.Welding.DivisionResult.rounded()
	out.Welding.Consumables = round2(d.Welding.Consumables)
	out.Certification = d.Certification.rounded()
	out.Medical = d.Medical.rounded()
	out.PPE.DivisionResult = d.PPE.DivisionResult.rounded()
	out.Commercialization.DivisionResult = d.Commercialization.DivisionResult.rounded()
	out.ProjectManagement = d.ProjectManagement.rounded()
	out.ComplianceProgram = d.ComplianceProgram.rounded()
	out.Logistics.DivisionResult = d.Logistics.DivisionResult.rounded()
	out.Logistics.Hotel = round2(d.Logistics.Hotel)
	out.Logistics.PerDiem = round2(d.Logistics.PerDiem)
	out.Logistics.Travel = round2(d.Logistics.Travel)
	return out
}
