// Package pdf renderiza el informe de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: INFORME DE INVENTARIO  │  Fecha + Hora             │
//	│  Generado por                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Productos | Unidades | Stock bajo                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Categoría | Cant. | Mín. | Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Fin del informe                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/inventario-kv/internal/application/report"
	"github.com/jhoicas/inventario-kv/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarning = &props.Color{Red: 180, Green: 110, Blue: 0}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa report.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

var _ report.ReportRenderer = (*MarotoReportRenderer)(nil)

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// RenderPDF genera el PDF y devuelve sus bytes.
func (r *MarotoReportRenderer) RenderPDF(ctx context.Context, doc report.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de inventario", true).
		WithAuthor(doc.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(doc.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc.Lines)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc report.Document) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("INFORME DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado por: "+doc.GeneratedBy, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+doc.GeneratedAt.Format(report.DateLayout), props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Hora: "+doc.GeneratedAt.Format(report.TimeLayout), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s inventory.Stats) core.Row {
	cell := func(label string, value int) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
			text.New(strconv.Itoa(value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		cell("Total de productos", s.Products),
		cell("Total de unidades", s.Units),
		cell("Productos con stock bajo", s.Alerts),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableDetailRows una fila por producto.
func tableDetailRows(lines []report.Line) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(l.Index), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(l.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.Status.ReportLabel(), props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: statusColor(l.Status),
			})),
		))
	}
	if len(lines) == 0 {
		result = append(result, row.New(8).Add(col.New(12).Add(
			text.New("Sin productos registrados", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	return result
}

func footerRow(doc report.Document) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Fin del informe", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorPrimary, Top: 1,
		}),
		text.New("Generado por: "+doc.GeneratedBy, props.Text{
			Size: 7, Align: align.Center, Top: 5, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusColor(s inventory.Status) *props.Color {
	switch s {
	case inventory.StatusOutOfStock:
		return colorDanger
	case inventory.StatusLowStock:
		return colorWarning
	default:
		return colorGray
	}
}
