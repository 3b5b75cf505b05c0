package drawing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Codec del lote de planos: convierte entre el campo de texto libre compacto y
// la secuencia estructurada de entradas. El formato es heredado del sistema
// original y debe seguir siendo interoperable con cualquier texto ya persistido:
//
//	una línea por entrada, campos separados por "|"
//	el primer token sin etiqueta es el número de plano
//	tokens etiquetados: "Qty", "Unit", "RFF" (case-insensitive, separador ":" o "=" opcional)
//
// Ejemplo: PL-1042 | Qty: 12.5 | Unit: pzas | RFF: RFF-77

// Entry es una entrada estructurada del lote de planos. Quantity se conserva
// como texto normalizado (vacío = sin cantidad); el codec nunca rechaza
// entrada malformada. TransmittalRef viaja a nivel de registro, no se
// codifica en el texto.
type Entry struct {
	DrawingNo      string
	Quantity       string
	Unit           string
	RFFRef         string
	TransmittalRef string
}

// IsEmpty indica si la entrada no tiene ningún campo de texto.
func (e Entry) IsEmpty() bool {
	return e.DrawingNo == "" && e.Quantity == "" && e.Unit == "" && e.RFFRef == ""
}

// QuantityDecimal devuelve la cantidad como decimal (cero si vacía o no numérica).
func (e Entry) QuantityDecimal() decimal.Decimal {
	if e.Quantity == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(e.Quantity)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Parse convierte el texto libre en entradas. Líneas vacías o sin ningún campo
// se descartan; tokens extra sin etiqueta (más allá del primero) se ignoran,
// nunca se concatenan al número de plano. Es la inversa exacta de Format para
// cualquier texto producido por Format.
func Parse(text string) []Entry {
	var entries []Entry
	for _, line := range splitLines(text) {
		e, ok := parseLine(line)
		if ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func parseLine(line string) (Entry, bool) {
	var e Entry
	for _, tok := range strings.Split(line, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if v, ok := matchLabel(tok, "qty"); ok {
			if e.Quantity == "" {
				e.Quantity = NormalizeQuantity(v)
			}
			continue
		}
		if v, ok := matchLabel(tok, "unit"); ok {
			if e.Unit == "" {
				e.Unit = v
			}
			continue
		}
		if v, ok := matchLabel(tok, "rff"); ok {
			if e.RFFRef == "" {
				e.RFFRef = v
			}
			continue
		}
		if e.DrawingNo == "" {
			e.DrawingNo = tok
		}
		// token sin etiqueta adicional: se ignora
	}
	return e, !e.IsEmpty()
}

// matchLabel reconoce "label", "label: valor", "label=valor" o "label valor"
// (prefijo case-insensitive). Devuelve el valor sin espacios.
func matchLabel(tok, label string) (string, bool) {
	if len(tok) < len(label) || !strings.EqualFold(tok[:len(label)], label) {
		return "", false
	}
	rest := tok[len(label):]
	if rest == "" {
		return "", true
	}
	// El resto debe empezar con separador o espacio; si no, el token es otra
	// cosa (p. ej. un plano llamado "RFF-77" como primer token).
	switch rest[0] {
	case ':', '=':
		return strings.TrimSpace(rest[1:]), true
	case ' ', '\t':
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// Format emite una línea por entrada, omitiendo campos vacíos y entradas sin
// ningún campo. Operación inversa de Parse.
func Format(entries []Entry) string {
	var lines []string
	for _, e := range entries {
		if e.IsEmpty() {
			continue
		}
		var parts []string
		if e.DrawingNo != "" {
			parts = append(parts, e.DrawingNo)
		}
		if e.Quantity != "" {
			parts = append(parts, "Qty: "+e.Quantity)
		}
		if e.Unit != "" {
			parts = append(parts, "Unit: "+e.Unit)
		}
		if e.RFFRef != "" {
			parts = append(parts, "RFF: "+e.RFFRef)
		}
		lines = append(lines, strings.Join(parts, " | "))
	}
	return strings.Join(lines, "\n")
}

// NormalizeQuantity normaliza un token numérico a máximo 4 decimales sin ceros
// finales. Tokens no numéricos se devuelven tal cual (recortados).
func NormalizeQuantity(tok string) string {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return ""
	}
	d, err := decimal.NewFromString(tok)
	if err != nil {
		return tok
	}
	s := d.Round(4).String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
