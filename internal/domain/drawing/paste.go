package drawing

import "strings"

// ImportPastedRows interpreta un bloque pegado desde hoja de cálculo: filas
// separadas por salto de línea, columnas por tabulador, en el orden
// [plano, cantidad, unidad, rff]. Una sola fila sin tabulador se trata como
// tecleo normal, no como pegado tabular, y devuelve ok=false sin tocar nada.
//
// Con filas válidas, empalma en currentEntries en insertionIndex: si la
// entrada en ese índice está completamente vacía se reemplaza por la primera
// fila y el resto se inserta después; si no, todas las filas se insertan antes
// de las entradas existentes desde ese índice. Las entradas anteriores y
// posteriores quedan intactas.
func ImportPastedRows(rawText string, insertionIndex int, currentEntries []Entry) ([]Entry, bool) {
	lines := splitLines(rawText)
	// descartar líneas vacías al final (el pegado suele traer \n de cierre)
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return currentEntries, false
	}
	if len(lines) == 1 && !strings.Contains(lines[0], "\t") {
		return currentEntries, false
	}

	var rows []Entry
	for _, line := range lines {
		cols := strings.Split(line, "\t")
		var e Entry
		if len(cols) > 0 {
			e.DrawingNo = strings.TrimSpace(cols[0])
		}
		if len(cols) > 1 {
			e.Quantity = NormalizeQuantity(cols[1])
		}
		if len(cols) > 2 {
			e.Unit = strings.TrimSpace(cols[2])
		}
		if len(cols) > 3 {
			e.RFFRef = strings.TrimSpace(cols[3])
		}
		if !e.IsEmpty() {
			rows = append(rows, e)
		}
	}
	if len(rows) == 0 {
		return currentEntries, false
	}

	if insertionIndex < 0 {
		insertionIndex = 0
	}
	if insertionIndex > len(currentEntries) {
		insertionIndex = len(currentEntries)
	}

	result := make([]Entry, 0, len(currentEntries)+len(rows))
	result = append(result, currentEntries[:insertionIndex]...)
	result = append(result, rows...)
	if insertionIndex < len(currentEntries) && currentEntries[insertionIndex].IsEmpty() {
		// la entrada vacía en el índice se reemplaza por la primera fila pegada
		result = append(result, currentEntries[insertionIndex+1:]...)
	} else {
		result = append(result, currentEntries[insertionIndex:]...)
	}
	return result, true
}
