package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxCommercializationItems bounds the resale item list of one request.
	MaxCommercializationItems = 500
	// MaxRoles bounds the number of role entries in PeopleByRole.
	MaxRoles = 100
	// MaxHeadcount bounds every people count of a request: each role, the
	// role total, welders, certified workers and travelers.
	MaxHeadcount = 100_000
	// MaxDays bounds certification packages, hotel nights and per diem days.
	MaxDays = 3_650
)

// Toggle switches an optional division on or off.
type Toggle struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// CommercializationItem is a third-party item resold to the client.
// A nil MarginPct falls back to the rule default.
type CommercializationItem struct {
	Description string           `json:"description" yaml:"description"`
	Qty         decimal.Decimal  `json:"qty" yaml:"qty"`
	Unit        string           `json:"unit" yaml:"unit"`
	VendorCost  decimal.Decimal  `json:"vendorCost" yaml:"vendorCost"`
	MarginPct   *decimal.Decimal `json:"marginPct,omitempty" yaml:"marginPct,omitempty"`
}

type Commercialization struct {
	Enabled bool                    `json:"enabled" yaml:"enabled"`
	Items   []CommercializationItem `json:"items" yaml:"items"`
}

// Logistics describes travel for crews working away from home.
type Logistics struct {
	Enabled                bool            `json:"enabled" yaml:"enabled"`
	TravelHeadcount        int64           `json:"travelHeadcount" yaml:"travelHeadcount"`
	HotelNights            int64           `json:"hotelNights" yaml:"hotelNights"`
	PerDiemDays            int64           `json:"perDiemDays" yaml:"perDiemDays"`
	RoundTripFarePerPerson decimal.Decimal `json:"roundTripFarePerPerson" yaml:"roundTripFarePerPerson"`
	HotelRatePerNight      decimal.Decimal `json:"hotelRatePerNight" yaml:"hotelRatePerNight"`
	PeoplePerRoom          int64           `json:"peoplePerRoom" yaml:"peoplePerRoom"`
	PerDiemRatePerDay      decimal.Decimal `json:"perDiemRatePerDay" yaml:"perDiemRatePerDay"`
}

// Request describes one labor-services job to be quoted.
type Request struct {
	Company     string `json:"company,omitempty" yaml:"company,omitempty"`
	ClientName  string `json:"clientName" yaml:"clientName"`
	ProjectName string `json:"projectName" yaml:"projectName"`
	Location    string `json:"location" yaml:"location"`
	WorkType    string `json:"workType" yaml:"workType"`

	DurationMonths decimal.Decimal `json:"durationMonths" yaml:"durationMonths"`
	PaymentTerms   string          `json:"paymentTerms" yaml:"paymentTerms"`

	PeopleByRole map[string]decimal.Decimal `json:"peopleByRole" yaml:"peopleByRole"`
	WeldersCount int64                      `json:"weldersCount" yaml:"weldersCount"`

	CertificationHeadcount    int64 `json:"certificationHeadcount" yaml:"certificationHeadcount"`
	CertificationPackageCount int64 `json:"certificationPackageCount" yaml:"certificationPackageCount"`

	Medical           Toggle            `json:"medical" yaml:"medical"`
	PPE               Toggle            `json:"ppe" yaml:"ppe"`
	ProjectManagement Toggle            `json:"projectManagement" yaml:"projectManagement"`
	ComplianceProgram Toggle            `json:"complianceProgram" yaml:"complianceProgram"`
	Commercialization Commercialization `json:"commercialization" yaml:"commercialization"`
	Logistics         Logistics         `json:"logistics" yaml:"logistics"`

	Assumptions []string `json:"assumptions" yaml:"assumptions"`
	Exclusions  []string `json:"exclusions" yaml:"exclusions"`
}

// NewRequest returns a request carrying the form defaults. Decoding JSON or
// YAML into it keeps the defaults of every omitted field.
func NewRequest() Request {
	return Request{
		DurationMonths:    decimal.NewFromInt(1),
		PaymentTerms:      "NETO 30",
		Medical:           Toggle{Enabled: true},
		PPE:               Toggle{Enabled: true},
		ProjectManagement: Toggle{Enabled: true},
		ComplianceProgram: Toggle{Enabled: true},
		Logistics: Logistics{
			RoundTripFarePerPerson: decimal.NewFromInt(6342),
			HotelRatePerNight:      decimal.NewFromInt(1200),
			PeoplePerRoom:          2,
			PerDiemRatePerDay:      decimal.NewFromInt(350),
		},
	}
}

// Headcount sums PeopleByRole, truncating each role to a whole number.
// Only meaningful for a request that passed Validate.
func (r Request) Headcount() int64 {
	var total int64
	for _, n := range r.PeopleByRole {
		total += n.IntPart()
	}
	return total
}

// Validate rejects requests Compute cannot price.
func (r Request) Validate() error {
	if !r.DurationMonths.IsPositive() {
		return invalidRequest("durationMonths", "debe ser mayor a 0")
	}
	if len(r.PeopleByRole) > MaxRoles {
		return invalidRequest("peopleByRole", fmt.Sprintf("admite como máximo %d roles", MaxRoles))
	}

	roles := make([]string, 0, len(r.PeopleByRole))
	for role := range r.PeopleByRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	maxHeadcount := decimal.NewFromInt(MaxHeadcount)
	total := decimal.Zero
	for _, role := range roles {
		n := r.PeopleByRole[role]
		if n.IsNegative() {
			return invalidRequest("peopleByRole."+role, "debe ser mayor o igual a 0")
		}
		if n.GreaterThan(maxHeadcount) {
			return invalidRequest("peopleByRole."+role, fmt.Sprintf("admite como máximo %d personas", MaxHeadcount))
		}
		total = total.Add(n.Truncate(0))
	}
	if total.GreaterThan(maxHeadcount) {
		return invalidRequest("peopleByRole", fmt.Sprintf("admite como máximo %d personas en total", MaxHeadcount))
	}

	counts := []boundedCount{
		{"weldersCount", r.WeldersCount, MaxHeadcount},
		{"certificationHeadcount", r.CertificationHeadcount, MaxHeadcount},
		{"certificationPackageCount", r.CertificationPackageCount, MaxDays},
	}
	if err := checkCounts(counts); err != nil {
		return err
	}

	if r.Commercialization.Enabled {
		if err := validateCommercialization(r.Commercialization.Items); err != nil {
			return err
		}
	}
	if r.Logistics.Enabled {
		if err := validateLogistics(r.Logistics); err != nil {
			return err
		}
	}
	return nil
}

func validateCommercialization(items []CommercializationItem) error {
	if len(items) > MaxCommercializationItems {
		return invalidRequest("commercialization.items", fmt.Sprintf("admite como máximo %d partidas", MaxCommercializationItems))
	}
	for i, it := range items {
		field := fmt.Sprintf("commercialization.items[%d]", i)
		if strings.TrimSpace(it.Description) == "" {
			return invalidRequest(field+".description", "es requerido")
		}
		if it.Qty.IsNegative() {
			return invalidRequest(field+".qty", "debe ser mayor o igual a 0")
		}
		if it.VendorCost.IsNegative() {
			return invalidRequest(field+".vendorCost", "debe ser mayor o igual a 0")
		}
		if it.MarginPct != nil && it.MarginPct.IsNegative() {
			return invalidRequest(field+".marginPct", "debe ser mayor o igual a 0")
		}
	}
	return nil
}

func validateLogistics(l Logistics) error {
	if l.PeoplePerRoom <= 0 {
		return invalidRequest("logistics.peoplePerRoom", "debe ser mayor a 0")
	}
	counts := []boundedCount{
		{"logistics.travelHeadcount", l.TravelHeadcount, MaxHeadcount},
		{"logistics.hotelNights", l.HotelNights, MaxDays},
		{"logistics.perDiemDays", l.PerDiemDays, MaxDays},
	}
	if err := checkCounts(counts); err != nil {
		return err
	}
	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"logistics.roundTripFarePerPerson", l.RoundTripFarePerPerson},
		{"logistics.hotelRatePerNight", l.HotelRatePerNight},
		{"logistics.perDiemRatePerDay", l.PerDiemRatePerDay},
	}
	for _, rt := range rates {
		if rt.value.IsNegative() {
			return invalidRequest(rt.field, "debe ser mayor o igual a 0")
		}
	}
	return nil
}

type boundedCount struct {
	field string
	value int64
	limit int64
}

func checkCounts(counts []boundedCount) error {
	for _, c := range counts {
		if c.value < 0 {
			return invalidRequest(c.field, "debe ser mayor o igual a 0")
		}
		if c.value > c.limit {
			return invalidRequest(c.field, fmt.Sprintf("admite como máximo %d", c.limit))
		}
	}
	return nil
}
