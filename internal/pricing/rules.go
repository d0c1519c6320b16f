package pricing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// OverrideMode selects how caller overrides combine with DefaultRules.
type OverrideMode string

const (
	// OverrideMerge replaces only the leaves the caller supplies.
	OverrideMerge OverrideMode = "merge"
	// OverrideReplace treats every supplied category as a complete
	// replacement. A category missing any of its leaves is rejected.
	OverrideReplace OverrideMode = "replace"
)

// ParseOverrideMode maps "" to OverrideMerge and rejects unknown values.
func ParseOverrideMode(raw string) (OverrideMode, error) {
	switch OverrideMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", OverrideMerge:
		return OverrideMerge, nil
	case OverrideReplace:
		return OverrideReplace, nil
	default:
		return "", invalidConfig("overrideMode", fmt.Sprintf("unknown mode %q", raw))
	}
}

type LaborRules struct {
	WeeklyRate    decimal.Decimal
	WeeksPerMonth decimal.Decimal
}

// UnitRate is the monthly cost and billed price of one welding unit
// (one unit covers up to ten welders).
type UnitRate struct {
	Cost  decimal.Decimal
	Price decimal.Decimal
}

type WeldingRules struct {
	Per10UnitsMonth UnitRate
}

// CertificationRules prices DC3 certificates. A package bills PackagePrice
// and costs three certificates.
type CertificationRules struct {
	UnitSell     decimal.Decimal
	PackagePrice decimal.Decimal
	UnitCost     decimal.Decimal
}

type MedicalRules struct {
	Cost decimal.Decimal
	Sell decimal.Decimal
}

type PlatformManagementRules struct {
	FeePerPersonMonth decimal.Decimal
}

type ComplianceProgramRules struct {
	FeePerProjectMonth decimal.Decimal
}

type CommercializationRules struct {
	DefaultMarginPct decimal.Decimal
}

type PPERules struct {
	MarkupPct           decimal.Decimal
	WorkingDaysPerMonth decimal.Decimal
}

// RuleSet holds every pricing parameter used by Compute. Percentages are
// fractions (0.15 means 15%).
type RuleSet struct {
	Labor                            LaborRules
	Welding                          WeldingRules
	WeldingConsumablesPerWelderMonth decimal.Decimal
	Certification                    CertificationRules
	Medical                          MedicalRules
	ManagementFeePct                 decimal.Decimal
	PlatformManagement               PlatformManagementRules
	ComplianceProgram                ComplianceProgramRules
	Commercialization                CommercializationRules
	PPE                              PPERules
}

// DefaultRules returns a fresh copy of the built-in rule table.
func DefaultRules() RuleSet {
	return RuleSet{
		Labor: LaborRules{
			WeeklyRate:    decimal.RequireFromString("6489.25"),
			WeeksPerMonth: decimal.NewFromInt(4),
		},
		Welding: WeldingRules{
			Per10UnitsMonth: UnitRate{
				Cost:  decimal.RequireFromString("18446.96"),
				Price: decimal.NewFromInt(21213),
			},
		},
		WeldingConsumablesPerWelderMonth: decimal.NewFromInt(3800),
		Certification: CertificationRules{
			UnitSell:     decimal.NewFromInt(500),
			PackagePrice: decimal.NewFromInt(1500),
			UnitCost:     decimal.NewFromInt(100),
		},
		Medical: MedicalRules{
			Cost: decimal.NewFromInt(250),
			Sell: decimal.NewFromInt(350),
		},
		ManagementFeePct:   decimal.RequireFromString("0.15"),
		PlatformManagement: PlatformManagementRules{FeePerPersonMonth: decimal.NewFromInt(180)},
		ComplianceProgram:  ComplianceProgramRules{FeePerProjectMonth: decimal.NewFromInt(3500)},
		Commercialization:  CommercializationRules{DefaultMarginPct: decimal.RequireFromString("0.20")},
		PPE: PPERules{
			MarkupPct:           decimal.RequireFromString("0.25"),
			WorkingDaysPerMonth: decimal.NewFromInt(26),
		},
	}
}

type ruleLeaf struct {
	path string
	dst  *decimal.Decimal
}

// leaves lists every parameter under its dotted path. The order is the
// order of the rule table and is used for stable output.
func (r *RuleSet) leaves() []ruleLeaf {
	return []ruleLeaf{
		{"labor.weeklyRate", &r.Labor.WeeklyRate},
		{"labor.weeksPerMonth", &r.Labor.WeeksPerMonth},
		{"welding.per10UnitsMonth.cost", &r.Welding.Per10UnitsMonth.Cost},
		{"welding.per10UnitsMonth.price", &r.Welding.Per10UnitsMonth.Price},
		{"weldingConsumablesPerWelderMonth", &r.WeldingConsumablesPerWelderMonth},
		{"certification.unitSell", &r.Certification.UnitSell},
		{"certification.packagePrice", &r.Certification.PackagePrice},
		{"certification.unitCost", &r.Certification.UnitCost},
		{"medical.cost", &r.Medical.Cost},
		{"medical.sell", &r.Medical.Sell},
		{"managementFeePct", &r.ManagementFeePct},
		{"platformManagement.feePerPersonMonth", &r.PlatformManagement.FeePerPersonMonth},
		{"complianceProgram.feePerProjectMonth", &r.ComplianceProgram.FeePerProjectMonth},
		{"commercialization.defaultMarginPct", &r.Commercialization.DefaultMarginPct},
		{"ppe.markupPct", &r.PPE.MarkupPct},
		{"ppe.workingDaysPerMonth", &r.PPE.WorkingDaysPerMonth},
	}
}

// Flatten returns the rules keyed by dotted path.
func (r RuleSet) Flatten() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, leaf := range r.leaves() {
		out[leaf.path] = *leaf.dst
	}
	return out
}

// Overrides renders the rules in the nested shape accepted by ResolveRules.
// Leaves stay decimal.Decimal so JSON and YAML output is exact.
func (r RuleSet) Overrides() map[string]any {
	out := make(map[string]any)
	for _, leaf := range r.leaves() {
		parts := strings.Split(leaf.path, ".")
		node := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = *leaf.dst
	}
	return out
}

// ResolveRules applies caller overrides on top of DefaultRules. overrides is
// the decoded form of a JSON or YAML document: nested maps of categories with
// numeric leaves.
func ResolveRules(overrides map[string]any, mode OverrideMode) (RuleSet, error) {
	rules := DefaultRules()
	if mode == "" {
		mode = OverrideMerge
	}
	if mode != OverrideMerge && mode != OverrideReplace {
		return RuleSet{}, invalidConfig("overrideMode", fmt.Sprintf("unknown mode %q", mode))
	}
	if len(overrides) == 0 {
		return rules, nil
	}

	leaves := make(map[string]*decimal.Decimal)
	groups := make(map[string]bool)
	for _, leaf := range rules.leaves() {
		leaves[leaf.path] = leaf.dst
		parts := strings.Split(leaf.path, ".")
		for i := 1; i < len(parts); i++ {
			groups[strings.Join(parts[:i], ".")] = true
		}
	}

	supplied := make(map[string]decimal.Decimal)
	if err := collectOverrides("", overrides, leaves, groups, supplied); err != nil {
		return RuleSet{}, err
	}

	if mode == OverrideReplace {
		for _, leaf := range rules.leaves() {
			category, _, nested := strings.Cut(leaf.path, ".")
			if !nested {
				continue
			}
			if _, present := overrides[category]; !present {
				continue
			}
			if _, ok := supplied[leaf.path]; !ok {
				return RuleSet{}, invalidConfig(leaf.path, "missing from replaced category "+category)
			}
		}
	}

	for path, value := range supplied {
		*leaves[path] = value
	}
	return rules, nil
}

func collectOverrides(prefix string, node map[string]any, leaves map[string]*decimal.Decimal, groups map[string]bool, out map[string]decimal.Decimal) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		raw := node[key]

		if _, isLeaf := leaves[path]; isLeaf {
			value, ok := toDecimal(raw)
			if !ok {
				return invalidConfig(path, fmt.Sprintf("expected a number, got %T", raw))
			}
			if value.IsNegative() {
				return invalidConfig(path, "must not be negative")
			}
			out[path] = value
			continue
		}

		if !groups[path] {
			return invalidConfig(path, "unknown rule")
		}
		child, ok := asMap(raw)
		if !ok {
			return invalidConfig(path, fmt.Sprintf("expected a mapping, got %T", raw))
		}
		if err := collectOverrides(path, child, leaves, groups, out); err != nil {
			return err
		}
	}
	return nil
}

func asMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func toDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case int32:
		return decimal.NewFromInt32(v), true
	case uint64:
		d, err := decimal.NewFromString(strconv.FormatUint(v, 10))
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}
