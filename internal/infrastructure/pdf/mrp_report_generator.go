// Package pdf genera el reporte de sugerencias de compra de una corrida MRP.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + código de corrida │ Horizonte + fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Partes | Materiales | Con faltante | Valor OC     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: materiales con faltante y su orden sugerida          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: requerimientos brutos por parte y fecha              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MRPReportGenerator implementa mrp.ReportGenerator usando Maroto v2.
type MRPReportGenerator struct {
	company string
	printer *message.Printer
}

// NewMRPReportGenerator construye el generador. company aparece como autor del documento.
func NewMRPReportGenerator(company string) *MRPReportGenerator {
	return &MRPReportGenerator{
		company: company,
		printer: message.NewPrinter(language.Spanish),
	}
}

// GenerateMRPReport genera el PDF y devuelve sus bytes.
func (g *MRPReportGenerator) GenerateMRPReport(result *entity.MRPResult, runCode string) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("pdf: resultado MRP vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Sugerencias de compra MRP "+runCode, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(result, runCode))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(result.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("MATERIALES CON FALTANTE"))
	m.AddRows(materialHeaderRow())
	shortages := g.materialRows(result.MaterialRequirements)
	if len(shortages) == 0 {
		m.AddRows(emptyRow("Sin faltantes de material en el horizonte."))
	}
	m.AddRows(shortages...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("REQUERIMIENTOS BRUTOS"))
	m.AddRows(grossHeaderRow())
	gross := g.grossRows(result.GrossRequirements)
	if len(gross) == 0 {
		m.AddRows(emptyRow("Sin demanda en el horizonte."))
	}
	m.AddRows(gross...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MRPReportGenerator) headerRow(result *entity.MRPResult, runCode string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("SUGERENCIAS DE COMPRA (MRP)", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Corrida: "+nonEmpty(runCode, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(g.printer.Sprintf("Horizonte: %d días", result.PlanningHorizon), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+result.GeneratedAt.Format("02/01/2006 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func (g *MRPReportGenerator) summaryRow(s entity.MRPSummary) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Partes", g.printer.Sprintf("%d", s.TotalParts)),
		cell("Materiales", g.printer.Sprintf("%d", s.TotalMaterials)),
		cell("Con faltante", g.printer.Sprintf("%d", s.MaterialsWithShortage)),
		cell("Valor estimado OC", "$"+g.money(s.TotalPOValue)),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}

func materialHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Código", 2, align.Left),
		headerCell("Descripción", 3, align.Left),
		headerCell("Faltante", 1, align.Right),
		headerCell("OC sugerida", 2, align.Right),
		headerCell("Pedir el", 1, align.Center),
		headerCell("Lead", 1, align.Center),
		headerCell("Valor", 2, align.Right),
	)
}

// materialRows una fila por material con faltante; los demás no requieren compra.
func (g *MRPReportGenerator) materialRows(mats []entity.MaterialRequirement) []core.Row {
	rows := make([]core.Row, 0, len(mats))
	for _, m := range mats {
		if !m.Shortage.IsPositive() {
			continue
		}
		orderDate := "—"
		if m.OrderDate != nil {
			orderDate = m.OrderDate.Format("02/01/2006")
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(m.MaterialCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(m.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.quantity(m.Shortage), props.Text{Size: 8, Top: 1, Align: align.Right, Color: colorAlert})),
			col.New(2).Add(text.New(g.quantity(m.SuggestedPOQuantity), props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Align: align.Right})),
			col.New(1).Add(text.New(orderDate, props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d d", m.SupplierLeadTime), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(2).Add(text.New("$"+g.money(m.POValue()), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func grossHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Parte", 2, align.Left),
		headerCell("Nombre", 3, align.Left),
		headerCell("Entrega", 1, align.Center),
		headerCell("Requerido", 1, align.Right),
		headerCell("Disponible", 1, align.Right),
		headerCell("Faltante", 1, align.Right),
		headerCell("Origen", 1, align.Left),
		headerCell("Referencia", 2, align.Left),
	)
}

func (g *MRPReportGenerator) grossRows(reqs []entity.GrossRequirement) []core.Row {
	rows := make([]core.Row, 0, len(reqs))
	for _, r := range reqs {
		shortageColor := colorGray
		if r.ShortageQuantity.IsPositive() {
			shortageColor = colorAlert
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(r.PartNumber, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(r.PartName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.DueDate.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(1).Add(text.New(g.quantity(r.RequiredQuantity), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(1).Add(text.New(g.quantity(r.AvailableQuantity), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(1).Add(text.New(g.quantity(r.ShortageQuantity), props.Text{Size: 8, Top: 1, Align: align.Right, Color: shortageColor})),
			col.New(1).Add(text.New(string(r.Source), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.ReferenceID, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// quantity formatea con separador de miles y hasta 4 decimales, sin ceros a la derecha.
func (g *MRPReportGenerator) quantity(d decimal.Decimal) string {
	d = d.Round(4)
	places := 0
	if s := d.String(); strings.Contains(s, ".") {
		places = len(s) - strings.IndexByte(s, '.') - 1
	}
	return g.printer.Sprintf(fmt.Sprintf("%%.%df", places), d.InexactFloat64())
}

// money valor en pesos sin decimales con separador de miles.
func (g *MRPReportGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("%d", d.Round(0).IntPart())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
