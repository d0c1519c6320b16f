package pricing

import "strings"

const (
	RiskCollection   = "Riesgo financiero por cobranza (NETO 30)"
	RiskLargeProject = "Proyecto grande (>50 personas)"

	// LargeProjectHeadcount is the largest crew not flagged as a large project.
	LargeProjectHeadcount = 50
)

// RiskFlags lists the advisory flags raised by a request, in a fixed order.
func RiskFlags(paymentTerms string, headcount int64) []string {
	flags := []string{}
	if strings.Contains(strings.ToUpper(paymentTerms), "NETO 30") {
		flags = append(flags, RiskCollection)
	}
	if headcount > LargeProjectHeadcount {
		flags = append(flags, RiskLargeProject)
	}
	return flags
}
