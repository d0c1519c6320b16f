// Package report renders priced quotes as terminal or Markdown tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/cotizador/internal/pricing"
)

// Format selects the table flavour.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps "" to FormatText.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q", raw)
	}
}

func newTable(f Format, rightAligned ...int) table.Writer {
	w := table.NewWriter()
	if f != FormatMarkdown {
		w.SetStyle(table.StyleLight)
	}
	cfgs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, n := range rightAligned {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	w.SetColumnConfigs(cfgs)
	return w
}

func render(w table.Writer, f Format) string {
	if f == FormatMarkdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func pct(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).String() + "%"
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

// ClientQuote renders the client-facing quote. It never shows costs.
func ClientQuote(q pricing.ClientQuote, f Format) string {
	var b strings.Builder
	h := q.Header
	if h.Company != "" {
		fmt.Fprintf(&b, "%s\n", h.Company)
	}
	fmt.Fprintf(&b, "Cliente: %s\n", h.ClientName)
	fmt.Fprintf(&b, "Proyecto: %s\n", h.ProjectName)
	if h.Location != "" {
		fmt.Fprintf(&b, "Ubicación: %s\n", h.Location)
	}
	if h.WorkType != "" {
		fmt.Fprintf(&b, "Tipo de trabajo: %s\n", h.WorkType)
	}
	fmt.Fprintf(&b, "Duración: %s meses\n", h.DurationMonths.String())
	fmt.Fprintf(&b, "Condiciones de pago: %s\n\n", h.PaymentTerms)

	c := q.Commercial
	t := newTable(f, 2)
	t.AppendHeader(table.Row{"Concepto", "Importe (" + c.Currency + ")"})
	t.AppendRow(table.Row{"Subtotal", money(c.Subtotal)})
	t.AppendRow(table.Row{"IVA " + pct(c.TaxRate), money(c.Tax)})
	t.AppendFooter(table.Row{"Total", money(c.Total)})
	b.WriteString(render(t, f))
	b.WriteString("\n")

	fmt.Fprintf(&b, "\nTotal: %s %s\n", money(c.Total), c.Currency)
	fmt.Fprintf(&b, "Vigencia: %s\n", c.Validity)
	writeList(&b, "Notas", c.Notes)
	writeList(&b, "Supuestos", c.Assumptions)
	writeList(&b, "Exclusiones", c.Exclusions)
	return b.String()
}

// WriteClientQuote writes the plain-text client quote to out.
func WriteClientQuote(out io.Writer, q pricing.ClientQuote) error {
	_, err := io.WriteString(out, ClientQuote(q, FormatText))
	return err
}

// Internal renders the cost and margin breakdown.
func Internal(in pricing.Internal, f Format) string {
	var b strings.Builder
	d := in.Divisions

	divisions := newTable(f, 2, 3, 4)
	divisions.AppendHeader(table.Row{"División", "Costo", "Precio", "Utilidad"})
	rows := []struct {
		name string
		r    pricing.DivisionResult
	}{
		{"Mano de obra", d.Labor},
		{fmt.Sprintf("Soldadura (%d equipos)", d.Welding.Units), d.Welding.DivisionResult},
		{"Consumibles de soldadura", pricing.DivisionResult{Cost: d.Welding.Consumables, Price: d.Welding.Consumables}},
		{"DC3", d.Certification},
		{"Exámenes médicos", d.Medical},
		{"EPP", d.PPE.DivisionResult},
		{"Comercialización", d.Commercialization.DivisionResult},
		{"Plataforma PM", d.ProjectManagement},
		{"Programa ISO", d.ComplianceProgram},
		{"Logística", d.Logistics.DivisionResult},
	}
	for _, row := range rows {
		divisions.AppendRow(table.Row{row.name, money(row.r.Cost), money(row.r.Price), money(row.r.Profit)})
	}
	divisions.AppendFooter(table.Row{"Total directo", money(in.Totals.DirectRealCost), money(in.Totals.PricingBase), ""})
	b.WriteString(render(divisions, f))
	b.WriteString("\n\n")

	totals := newTable(f, 2)
	totals.AppendHeader(table.Row{"Resumen", "Importe"})
	totals.AppendRow(table.Row{"Personal", in.Totals.Headcount})
	totals.AppendRow(table.Row{"Costo directo real", money(in.Totals.DirectRealCost)})
	totals.AppendRow(table.Row{"Base de precio", money(in.Totals.PricingBase)})
	totals.AppendRow(table.Row{"Cuota de gestión", money(in.Totals.ManagementFee)})
	totals.AppendRow(table.Row{"Utilidad bruta antes de IVA", money(in.Totals.GrossProfitBeforeTax)})
	totals.AppendRow(table.Row{"Margen", money(in.Totals.MarginPct) + "%"})
	b.WriteString(render(totals, f))
	b.WriteString("\n")

	if len(in.PPELines) > 0 {
		ppe := newTable(f, 4, 5, 6)
		ppe.AppendHeader(table.Row{"SKU", "Artículo", "Unidad", "Cantidad", "Precio unitario", "Importe"})
		for _, line := range in.PPELines {
			ppe.AppendRow(table.Row{line.SKU, line.Name, line.Unit, line.Qty.String(), money(line.UnitPrice), money(line.LineCost)})
		}
		b.WriteString("\n")
		b.WriteString(render(ppe, f))
		b.WriteString("\n")
	}

	if len(in.CommercializationLines) > 0 {
		comm := newTable(f, 2, 4, 5, 6, 7)
		comm.AppendHeader(table.Row{"Descripción", "Cantidad", "Unidad", "Margen", "Costo", "Precio", "Utilidad"})
		for _, line := range in.CommercializationLines {
			comm.AppendRow(table.Row{line.Description, line.Qty.String(), line.Unit, pct(line.MarginPct), money(line.LineCost), money(line.LinePrice), money(line.LineProfit)})
		}
		b.WriteString("\n")
		b.WriteString(render(comm, f))
		b.WriteString("\n")
	}

	writeList(&b, "Riesgos", in.RiskFlags)
	return b.String()
}
