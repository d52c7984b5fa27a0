// Package pdf genera el informe comercial de un periodo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + título   │  Periodo + fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TILES: Pedidos | Kg | OTIF | Precio promedio                │
//	│  RECLAMOS: abiertos / resueltos                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA MIX: Especie | Mercado | Kg | Pedidos | USD | Margen  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS: margen parcial, definición de OTIF                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appanalytics "github.com/jhoicas/mf-comercial/internal/application/analytics"
	"github.com/jhoicas/mf-comercial/internal/domain/kpi"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorWarning = &props.Color{Red: 191, Green: 108, Blue: 0}
	colorGood    = &props.Color{Red: 22, Green: 128, Blue: 61}
	headerBg     = &props.Color{Red: 0, Green: 70, Blue: 127}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCommercialReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCommercialReport(_ context.Context, report appanalytics.CommercialReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("KPI Comercial "+report.KPI.Period, true).
		WithAuthor(nonEmpty(report.Company, "Comercial"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tilesRow(report.KPI))
	m.AddRows(claimsRow(report.KPI.Claims))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Mix por especie / mercado
	m.AddRows(sectionTitleRow("MIX POR ESPECIE / MERCADO"))
	m.AddRows(mixHeaderRow())
	if len(report.KPI.Mix) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin cierres en período", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	for _, r := range mixRows(report.KPI.Mix) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range notesRows(report.KPI) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + título (izq) y periodo + fecha de emisión (der).
func headerRow(report appanalytics.CommercialReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(report.Company, "Comercial"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Informe de KPI comerciales", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERIODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(report.PeriodLabel, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Emitido: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// tilesRow: los cuatro indicadores del periodo con su avance contra meta.
func tilesRow(c kpi.Commercial) core.Row {
	tile := func(title, value string, t *kpi.TargetTile) core.Col {
		components := []core.Component{
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1, Left: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Left: 1}),
		}
		if t != nil {
			components = append(components, text.New(t.Text, props.Text{
				Size: 7, Top: 13, Left: 1, Color: toneColor(t.Tone),
			}))
		}
		return col.New(3).Add(components...)
	}
	return row.New(20).Add(
		tile("PEDIDOS CERRADOS", fmt.Sprintf("%d", c.OrdersClosed), &c.OrdersTile),
		tile("KG CERRADOS", kpi.FormatKg(c.KgClosed), &c.KgTile),
		tile("OTIF", c.OTIF.Pct.StringFixed(1)+"%", &c.OtifTile),
		tile("PRECIO PROMEDIO USD/KG", kpi.FormatUsd(c.AvgPriceUsdPerKg), nil),
	)
}

// claimsRow: reclamos abiertos y resueltos.
func claimsRow(claims kpi.ClaimsSummary) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Reclamos abiertos: %d   |   Resueltos: %d", claims.Open, claims.Resolved), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		}),
	))
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// mixHeaderRow: cabecera de la tabla con fondo azul.
func mixHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Especie", 2, align.Left),
		h("Mercado", 2, align.Left),
		h("Kg", 2, align.Right),
		h("Pedidos", 1, align.Center),
		h("Ingresos USD", 2, align.Right),
		h("Margen USD", 2, align.Right),
		h("%", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: headerBg})
}

// mixRows: una fila por combinación especie / mercado.
func mixRows(mix []kpi.MixRow) []core.Row {
	result := make([]core.Row, 0, len(mix))
	for _, r := range mix {
		margin := "-"
		if r.MarginUsd != nil {
			margin = kpi.FormatUsd(*r.MarginUsd)
			if r.MarginPartial {
				margin += " *"
			}
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(string(r.Specie), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Market, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(kpi.FormatKg(r.Kg), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Orders), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(kpi.FormatUsd(r.RevenueUsd), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(margin, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(r.SharePct.StringFixed(1), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// notesRows: aclaraciones al pie.
func notesRows(c kpi.Commercial) []core.Row {
	notes := []string{
		"OTIF: entregado a más tardar en la ETA y con documentos en estado OK.",
	}
	for _, r := range c.Mix {
		if r.MarginPartial {
			notes = append(notes, "* Margen parcial: algunos embarques del grupo no informan margen.")
			break
		}
	}
	rows := make([]core.Row, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(n, props.Text{Size: 6.5, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func toneColor(t kpi.Tone) *props.Color {
	if t == kpi.ToneWarning {
		return colorWarning
	}
	return colorGood
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
