// Package pdf implementa la generación del tiquete de venta POS.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT  │  N° Tiquete + Fecha               │
//	│  Bodega de la venta                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total línea               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuestos / TOTAL           │
//	│  FOOTER: Código de barras del tiquete                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/pos-bodegas/internal/application/sales"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.TicketPDFGenerator = (*TicketGenerator)(nil)

// TicketGenerator implementa sales.TicketPDFGenerator usando Maroto v2.
type TicketGenerator struct{}

// NewTicketGenerator construye el generador.
func NewTicketGenerator() *TicketGenerator { return &TicketGenerator{} }

// GenerateSaleTicket genera el PDF del tiquete y devuelve sus bytes.
func (g *TicketGenerator) GenerateSaleTicket(
	_ context.Context,
	sale *entity.Sale,
	company *entity.Company,
	warehouse *entity.Warehouse,
	lines []sales.TicketLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tiquete de venta "+sale.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, company))
	m.AddRows(row.New(6).Add(
		col.New(12).Add(
			text.New("Bodega: "+warehouse.Name, props.Text{Size: 9, Color: colorGray}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(16).Add(
		col.New(4),
		col.New(4).Add(code.NewBar(sale.Number, props.Barcode{Center: true, Percent: 80})),
		col.New(4),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar tiquete: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa + NIT (izq) y número de tiquete + fecha (der).
func headerRow(sale *entity.Sale, company *entity.Company) core.Row {
	fecha := sale.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("NIT: "+company.TaxID, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Tiquete "+sale.Number, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1}),
			text.New(fecha, props.Text{Size: 9, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	return row.New(8).Add(
		col.New(2).Add(text.New("Cant.", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("P. Unit", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Align: align.Right})),
		col.New(3).Add(text.New("Total", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Align: align.Right})),
	)
}

func tableLineRows(lines []sales.TicketLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 9})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 9})),
			col.New(2).Add(text.New(l.UnitPrice, props.Text{Size: 9, Align: align.Right})),
			col.New(3).Add(text.New(l.LineTotal, props.Text{Size: 9, Align: align.Right})),
		))
	}
	return rows
}

func totalsRows(sale *entity.Sale) []core.Row {
	label := props.Text{Size: 9, Align: align.Right, Color: colorGray}
	value := props.Text{Size: 9, Align: align.Right}
	totalLabel := props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary}
	return []core.Row{
		row.New(5).Add(
			col.New(9).Add(text.New("Subtotal", label)),
			col.New(3).Add(text.New(sale.GrossAmount.StringFixed(2), value)),
		),
		row.New(5).Add(
			col.New(9).Add(text.New("Descuento", label)),
			col.New(3).Add(text.New(sale.DiscountAmount.StringFixed(2), value)),
		),
		row.New(5).Add(
			col.New(9).Add(text.New("Impuestos", label)),
			col.New(3).Add(text.New(sale.TaxAmount.StringFixed(2), value)),
		),
		row.New(8).Add(
			col.New(9).Add(text.New("TOTAL", totalLabel)),
			col.New(3).Add(text.New(sale.TotalAmount.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right})),
		),
	}
}
