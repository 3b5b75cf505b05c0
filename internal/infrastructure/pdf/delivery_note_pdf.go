// Package pdf implementa la representación gráfica de la Nota de Entrega de
// una liberación aprobada por calidad.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  NOTA DE ENTREGA + Fecha de aprobación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RENGLÓN: Código + Descripción + Unidad                     │
//	│  CANTIDADES: Liberada / Aprobada                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Plano | Cant | Unidad | RFF                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Transmittal + referencia de inspección              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/Produccion-api/internal/application/quality"
	"github.com/jhoicas/Produccion-api/internal/domain/drawing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quality.DeliveryNotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF de la nota de entrega y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(data quality.DeliveryNoteData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Entrega", true).
		WithAuthor(data.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(itemRow(data))
	m.AddRows(quantitiesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de planos de la liberación
	m.AddRows(tableHeaderRow())
	for _, r := range drawingRows(data.Entries) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y título + fecha de aprobación (der).
func headerRow(data quality.DeliveryNoteData) core.Row {
	fecha := data.ApprovedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Control de Producción y Calidad", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("NOTA DE ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha de aprobación: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// itemRow: datos del renglón de trabajo entregado.
func itemRow(data quality.DeliveryNoteData) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RENGLÓN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.WorkItemCode, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s   |   Unidad: %s",
				nonEmpty(data.WorkItemDesc, "—"),
				nonEmpty(data.Unit, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// quantitiesRow: cantidad liberada y cantidad aprobada por calidad.
func quantitiesRow(data quality.DeliveryNoteData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Cantidad liberada:"),
			label("Cantidad aprobada:"),
		),
		col.New(3).Add(
			value(data.ReleaseQuantity.String()+" "+data.Unit),
			value(data.ApprovedQty.String()+" "+data.Unit),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de planos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Plano", 4, align.Left),
		h("Cant.", 2, align.Right),
		h("Unidad", 2, align.Center),
		h("RFF", 4, align.Left),
	)
}

// drawingRows: una fila por plano del lote.
func drawingRows(entries []drawing.Entry) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		if e.IsEmpty() {
			continue
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				e.DrawingNo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(e.Quantity, "—"),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(e.Unit, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				nonEmpty(e.RFFRef, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// footerRows: transmittal + referencia de la pasada de inspección.
func footerRows(data quality.DeliveryNoteData) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("TRAZABILIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Transmittal: "+nonEmpty(data.TransmittalRef, "—"), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Inspección: "+data.InspectionID, props.Text{
				Size: 7, Top: 1, Color: colorGray,
			}),
		)),
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento generado automáticamente al aprobarse la inspección de calidad. "+
				"Conserve esta nota como soporte de la entrega.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
