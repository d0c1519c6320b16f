// Package pricing prices industrial labor-services quotes. It is pure: no
// I/O, no shared mutable state, safe for concurrent use.
package pricing

// Compute validates req and prices it against rules and catalog. It never
// returns a partial result together with an error.
func Compute(req Request, rules RuleSet, catalog Catalog) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	headcount := req.Headcount()
	months := req.DurationMonths

	d := Divisions{
		Labor:             EstimateLabor(headcount, months, rules.Labor),
		Welding:           EstimateWelding(req.WeldersCount, months, rules.Welding, rules.WeldingConsumablesPerWelderMonth),
		Certification:     EstimateCertification(req.CertificationHeadcount, req.CertificationPackageCount, rules.Certification),
		Medical:           EstimateMedical(req.Medical.Enabled, headcount, rules.Medical),
		PPE:               EstimatePPE(req.PPE.Enabled, headcount, months, rules.PPE, catalog),
		Commercialization: EstimateCommercialization(req.Commercialization, rules.Commercialization),
		ProjectManagement: EstimateProjectManagement(req.ProjectManagement.Enabled, headcount, months, rules.PlatformManagement),
		ComplianceProgram: EstimateComplianceProgram(req.ComplianceProgram.Enabled, months, rules.ComplianceProgram),
		Logistics:         EstimateLogistics(req.Logistics),
	}

	return assemble(req, rules, headcount, d, AggregateDivisions(d, rules.ManagementFeePct)), nil
}
