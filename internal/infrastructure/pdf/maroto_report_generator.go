// Package pdf implementa el reporte imprimible de conciliación de saldos.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte │ Fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Empresa | Material | Descripción | Kárdex | Bodega  │
//	│         | Diferencia                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: filas totales / filas con diferencia               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/saldos-api/internal/application/balances"
	"github.com/jhoicas/saldos-api/internal/domain/reconcile"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ balances.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa balances.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// DivergenceReport genera el PDF del reporte de conciliación y devuelve sus bytes.
func (g *MarotoReportGenerator) DivergenceReport(
	_ context.Context,
	generatedAt time.Time,
	rows []reconcile.Row,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Conciliación de saldos kárdex / bodega", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("CONCILIACIÓN DE SALDOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comparativo kárdex vs bodega por empresa y material", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla comparativa.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Empresa", 1, align.Center),
		h("Material", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Saldo kárdex", 2, align.Right),
		h("Saldo bodega", 2, align.Right),
		h("Diferencia", 1, align.Right),
	)
}

// tableDetailRows: una fila por par (empresa, material). Las diferencias
// distintas de cero se resaltan en rojo.
func tableDetailRows(rows []reconcile.Row) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		diffColor := colorGray
		if !r.Difference.IsZero() {
			diffColor = colorAlert
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				r.CompanyKey,
				props.Text{Size: 7.5, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				r.Material,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				r.Description,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				r.BalanceLedger.StringFixed(2),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				r.BalanceStock.StringFixed(2),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				r.Difference.StringFixed(2),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1, Color: diffColor},
			)),
		))
	}
	return result
}

// summaryRow: totales del reporte.
func summaryRow(rows []reconcile.Row) core.Row {
	divergent := 0
	for _, r := range rows {
		if !r.Difference.IsZero() {
			divergent++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Filas: %d   |   Con diferencia: %d", len(rows), divergent), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}
