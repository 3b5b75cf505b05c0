package http

import (
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain/drawing"
)

// DrawingHandler maneja utilidades del lote de planos (pegado masivo desde
// hoja de cálculo).
type DrawingHandler struct{}

// NewDrawingHandler construye el handler.
func NewDrawingHandler() *DrawingHandler {
	return &DrawingHandler{}
}

// PasteImport godoc
// @Summary      Importar filas pegadas desde hoja de cálculo
// @Description  Texto tabulado: una fila por línea, columnas plano/cantidad/unidad/RFF. Una sola fila sin tabulador se trata como tecleo normal (applied=false). El resultado empalma sobre la secuencia vigente en insertion_index.
// @Tags         drawings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasteImportRequest  true  "Texto crudo + secuencia vigente"
// @Success      200   {object}  dto.PasteImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drawings/paste-import [post]
func (h *DrawingHandler) PasteImport(c *fiber.Ctx) error {
	var in dto.PasteImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RawText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "raw_text es requerido"})
	}
	if in.InsertionIndex < 0 || in.InsertionIndex > len(in.Entries) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "insertion_index fuera de rango"})
	}

	// Los portapapeles de Excel en Windows llegan a veces en Windows-1252.
	raw := in.RawText
	if !utf8.ValidString(raw) {
		decoded, _, err := transform.String(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ENCODING", Message: "texto con codificación no soportada"})
		}
		raw = decoded
	}

	current := production.EntriesFromDTO(in.Entries)
	result, applied := drawing.ImportPastedRows(raw, in.InsertionIndex, current)
	return c.JSON(dto.PasteImportResponse{
		Applied: applied,
		Entries: production.EntriesToDTO(result),
	})
}
