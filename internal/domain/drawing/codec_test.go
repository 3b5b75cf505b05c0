package drawing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain/drawing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Parse — gramática del texto libre
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_LineaCompleta(t *testing.T) {
	entries := drawing.Parse("PL-1042 | Qty: 12.5 | Unit: pzas | RFF: RFF-77")
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "PL-1042", e.DrawingNo)
	assert.Equal(t, "12.5", e.Quantity)
	assert.Equal(t, "pzas", e.Unit)
	assert.Equal(t, "RFF-77", e.RFFRef)
}

func TestParse_EtiquetasCaseInsensitiveYSeparadores(t *testing.T) {
	cases := []string{
		"PL-1 | qty: 3 | unit: kg | rff: R-1",
		"PL-1 | QTY=3 | UNIT=kg | RFF=R-1",
		"PL-1 | Qty 3 | Unit kg | Rff R-1",
	}
	for _, text := range cases {
		entries := drawing.Parse(text)
		require.Len(t, entries, 1, "texto: %q", text)
		assert.Equal(t, "PL-1", entries[0].DrawingNo)
		assert.Equal(t, "3", entries[0].Quantity)
		assert.Equal(t, "kg", entries[0].Unit)
		assert.Equal(t, "R-1", entries[0].RFFRef)
	}
}

// Un primer token que empieza como una etiqueta pero sin separador es un
// número de plano, no una etiqueta (p. ej. "RFF-77").
func TestParse_PlanoQueParecesEtiqueta(t *testing.T) {
	entries := drawing.Parse("RFF-77 | Qty: 2")
	require.Len(t, entries, 1)
	assert.Equal(t, "RFF-77", entries[0].DrawingNo)
	assert.Equal(t, "2", entries[0].Quantity)
	assert.Empty(t, entries[0].RFFRef)
}

func TestParse_TokensSinEtiquetaExtraSeIgnoran(t *testing.T) {
	entries := drawing.Parse("PL-1 | basura | Qty: 4")
	require.Len(t, entries, 1)
	assert.Equal(t, "PL-1", entries[0].DrawingNo)
	assert.Equal(t, "4", entries[0].Quantity)
}

func TestParse_EtiquetaRepetidaConservaLaPrimera(t *testing.T) {
	entries := drawing.Parse("PL-1 | Qty: 4 | Qty: 9")
	require.Len(t, entries, 1)
	assert.Equal(t, "4", entries[0].Quantity)
}

func TestParse_LineasVaciasSeDescartan(t *testing.T) {
	entries := drawing.Parse("PL-1 | Qty: 1\n\n   \nPL-2 | Qty: 2\n")
	require.Len(t, entries, 2)
	assert.Equal(t, "PL-1", entries[0].DrawingNo)
	assert.Equal(t, "PL-2", entries[1].DrawingNo)
}

func TestParse_SaltosDeLineaWindows(t *testing.T) {
	entries := drawing.Parse("PL-1 | Qty: 1\r\nPL-2 | Qty: 2")
	require.Len(t, entries, 2)
}

func TestParse_TextoVacio(t *testing.T) {
	assert.Empty(t, drawing.Parse(""))
	assert.Empty(t, drawing.Parse("   \n  \n"))
}

// ──────────────────────────────────────────────────────────────────────────────
// NormalizeQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeQuantity(t *testing.T) {
	cases := map[string]string{
		"12.5000":  "12.5",
		"3.00":     "3",
		"0.12345":  "0.1235", // redondeo a 4 decimales
		"  7.25 ":  "7.25",
		"abc":      "abc", // no numérico: se conserva tal cual
		"":         "",
		"10":       "10",
		"0.10000":  "0.1",
	}
	for in, want := range cases {
		assert.Equal(t, want, drawing.NormalizeQuantity(in), "entrada: %q", in)
	}
}

func TestQuantityDecimal(t *testing.T) {
	e := drawing.Entry{Quantity: "12.5"}
	assert.True(t, e.QuantityDecimal().Equal(decimal.RequireFromString("12.5")))

	assert.True(t, drawing.Entry{}.QuantityDecimal().IsZero())
	assert.True(t, drawing.Entry{Quantity: "n/a"}.QuantityDecimal().IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Format + ida y vuelta
// ──────────────────────────────────────────────────────────────────────────────

func TestFormat_OmiteCamposVaciosYEntradasVacias(t *testing.T) {
	entries := []drawing.Entry{
		{DrawingNo: "PL-1", Quantity: "5"},
		{}, // vacía: no emite línea
		{DrawingNo: "PL-2", Unit: "kg", RFFRef: "R-9"},
	}
	got := drawing.Format(entries)
	assert.Equal(t, "PL-1 | Qty: 5\nPL-2 | Unit: kg | RFF: R-9", got)
}

// Parse(Format(x)) conserva las entradas no vacías con cantidades normalizadas.
func TestRoundTrip_FormatLuegoParse(t *testing.T) {
	original := []drawing.Entry{
		{DrawingNo: "PL-1042", Quantity: "12.5", Unit: "pzas", RFFRef: "RFF-77"},
		{DrawingNo: "PL-1043", Quantity: "3"},
		{DrawingNo: "PL-1044"},
	}
	parsed := drawing.Parse(drawing.Format(original))
	require.Len(t, parsed, len(original))
	for i := range original {
		assert.Equal(t, original[i].DrawingNo, parsed[i].DrawingNo, "entrada %d", i)
		assert.Equal(t, original[i].Quantity, parsed[i].Quantity, "entrada %d", i)
		assert.Equal(t, original[i].Unit, parsed[i].Unit, "entrada %d", i)
		assert.Equal(t, original[i].RFFRef, parsed[i].RFFRef, "entrada %d", i)
	}
}

// Texto ya persistido por versiones anteriores debe seguir siendo estable:
// Format(Parse(texto)) == texto para texto canónico.
func TestRoundTrip_TextoCanonicoEstable(t *testing.T) {
	text := "PL-1 | Qty: 2.5 | Unit: kg | RFF: R-1\nPL-2 | Qty: 7"
	assert.Equal(t, text, drawing.Format(drawing.Parse(text)))
}
