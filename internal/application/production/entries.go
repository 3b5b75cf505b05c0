package production

import (
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain/drawing"
)

// EntriesFromDTO convierte las líneas del request a entradas del codec,
// normalizando cantidades y descartando líneas completamente vacías al sumar.
func EntriesFromDTO(in []dto.DrawingEntryDTO) []drawing.Entry {
	entries := make([]drawing.Entry, 0, len(in))
	for _, d := range in {
		entries = append(entries, drawing.Entry{
			DrawingNo: d.DrawingNo,
			Quantity:  drawing.NormalizeQuantity(d.Quantity),
			Unit:      d.Unit,
			RFFRef:    d.RFFRef,
		})
	}
	return entries
}

// EntriesToDTO convierte entradas del codec a líneas de respuesta.
func EntriesToDTO(entries []drawing.Entry) []dto.DrawingEntryDTO {
	out := make([]dto.DrawingEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.DrawingEntryDTO{
			DrawingNo: e.DrawingNo,
			Quantity:  e.Quantity,
			Unit:      e.Unit,
			RFFRef:    e.RFFRef,
		})
	}
	return out
}
