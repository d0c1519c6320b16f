package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	Currency = "MXN"
	Validity = "15 días"

	overtimeNote = "Tiempo extra no incluido. Se cotiza por separado conforme a ley."
)

// Header identifies the quoted job on the client quote.
type Header struct {
	Company        string          `json:"company"`
	ClientName     string          `json:"clientName"`
	ProjectName    string          `json:"projectName"`
	Location       string          `json:"location"`
	WorkType       string          `json:"workType"`
	DurationMonths decimal.Decimal `json:"durationMonths"`
	PaymentTerms   string          `json:"paymentTerms"`
}

// Commercial is the priced part of the client quote.
type Commercial struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	Validity    string          `json:"validity"`
	Notes       []string        `json:"notes"`
	Assumptions []string        `json:"assumptions"`
	Exclusions  []string        `json:"exclusions"`
}

// ClientQuote is what the client sees. It carries no cost data.
type ClientQuote struct {
	Header     Header     `json:"header"`
	Commercial Commercial `json:"commercial"`
}

type InternalTotals struct {
	Headcount            int64           `json:"headcount"`
	DirectRealCost       decimal.Decimal `json:"directRealCost"`
	PricingBase          decimal.Decimal `json:"pricingBase"`
	ManagementFee        decimal.Decimal `json:"managementFee"`
	GrossProfitBeforeTax decimal.Decimal `json:"grossProfitBeforeTax"`
	MarginPct            decimal.Decimal `json:"marginPct"`
}

// Internal is the cost and margin breakdown kept in-house.
type Internal struct {
	Totals                 InternalTotals          `json:"totals"`
	Divisions              Divisions               `json:"divisions"`
	PPELines               []PPELine               `json:"ppeLines"`
	CommercializationLines []CommercializationLine `json:"commercializationLines"`
	RiskFlags              []string                `json:"riskFlags"`
}

// Totals are the three aggregate amounts persisted next to a quote.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Result groups the client quote, the internal breakdown and the totals.
// Every monetary value is rounded to cents.
type Result struct {
	ClientQuote ClientQuote `json:"clientQuote"`
	Internal    Internal    `json:"internal"`
	Totals      Totals      `json:"totals"`
}

func managementFeeNote(pct decimal.Decimal) string {
	return fmt.Sprintf("Cuota de gestión obligatoria (%s%%).", pct.Mul(hundred).String())
}

func assemble(req Request, rules RuleSet, headcount int64, d Divisions, a Aggregate) *Result {
	totals := Totals{
		Subtotal: round2(a.Subtotal),
		Tax:      round2(a.Tax),
		Total:    round2(a.Total),
	}

	return &Result{
		ClientQuote: ClientQuote{
			Header: Header{
				Company:        req.Company,
				ClientName:     req.ClientName,
				ProjectName:    req.ProjectName,
				Location:       req.Location,
				WorkType:       req.WorkType,
				DurationMonths: req.DurationMonths,
				PaymentTerms:   req.PaymentTerms,
			},
			Commercial: Commercial{
				Subtotal:    totals.Subtotal,
				Tax:         totals.Tax,
				TaxRate:     taxRate,
				Total:       totals.Total,
				Currency:    Currency,
				Validity:    Validity,
				Notes:       []string{overtimeNote, managementFeeNote(rules.ManagementFeePct)},
				Assumptions: nonNil(req.Assumptions),
				Exclusions:  nonNil(req.Exclusions),
			},
		},
		Internal: Internal{
			Totals: InternalTotals{
				Headcount:            headcount,
				DirectRealCost:       round2(a.DirectRealCost),
				PricingBase:          round2(a.PricingBase),
				ManagementFee:        round2(a.ManagementFee),
				GrossProfitBeforeTax: round2(a.GrossProfitBeforeTax),
				MarginPct:            round2(a.MarginPct),
			},
			Divisions:              d.rounded(),
			PPELines:               d.PPE.Lines,
			CommercializationLines: d.Commercialization.Lines,
			RiskFlags:              RiskFlags(req.PaymentTerms, headcount),
		},
		Totals: totals,
	}
}

func nonNil(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
