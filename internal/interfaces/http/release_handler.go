package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/quality"
)

// ReleaseHandler maneja las peticiones HTTP del ciclo de vida de liberaciones.
type ReleaseHandler struct {
	uc           *production.ReleaseUseCase
	inspectionUC *quality.InspectionUseCase
	deliveryUC   *quality.DeliveryNoteUseCase
}

// NewReleaseHandler construye el handler.
func NewReleaseHandler(uc *production.ReleaseUseCase, inspectionUC *quality.InspectionUseCase, deliveryUC *quality.DeliveryNoteUseCase) *ReleaseHandler {
	return &ReleaseHandler{uc: uc, inspectionUC: inspectionUC, deliveryUC: deliveryUC}
}

// Create godoc
// @Summary      Liberar cantidad de un renglón
// @Description  La cantidad de la liberación es la suma de las líneas no vacías del lote de planos; nunca puede exceder el saldo del renglón.
// @Tags         releases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReleaseRequest  true  "Lote de planos + transmittal"
// @Success      201   {object}  dto.ReleaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/releases [post]
func (h *ReleaseHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateReleaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.WorkItemID == "" || len(in.Entries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "work_item_id y entries son requeridos"})
	}
	out, err := h.uc.CreateRelease(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener liberación por ID
// @Tags         releases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la liberación"
// @Success      200  {object}  dto.ReleaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/releases/{id} [get]
func (h *ReleaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByWorkItem godoc
// @Summary      Listar liberaciones de un renglón con saldo corrido
// @Tags         releases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del renglón"
// @Success      200  {object}  dto.ReleaseListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-items/{id}/releases [get]
func (h *ReleaseHandler) ListByWorkItem(c *fiber.Ctx) error {
	out, err := h.uc.ListByWorkItem(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar una liberación no bloqueada
// @Description  Rechazada con 409 si alguna inspección de la liberación ya tiene pasos con veredicto.
// @Tags         releases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la liberación"
// @Param        body  body  dto.UpdateReleaseRequest  true  "Campos a editar"
// @Success      200   {object}  dto.ReleaseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/releases/{id} [put]
func (h *ReleaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReleaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateRelease(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar una liberación (soft delete)
// @Description  La cantidad vuelve al saldo del renglón. Bloqueado si la inspección ya fue iniciada.
// @Tags         releases
// @Security     Bearer
// @Param        id   path  string  true  "ID de la liberación"
// @Success      204  "sin contenido"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/releases/{id} [delete]
func (h *ReleaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteRelease(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StartProduction godoc
// @Summary      Pasar la liberación a producción
// @Tags         releases
// @Security     Bearer
// @Param        id   path  string  true  "ID de la liberación"
// @Success      204  "sin contenido"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/releases/{id}/start [post]
func (h *ReleaseHandler) StartProduction(c *fiber.Ctx) error {
	if err := h.uc.StartProduction(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reject godoc
// @Summary      Rechazar una liberación (solo admin)
// @Description  Transición administrativa explícita; la agregación de inspección nunca rechaza sola.
// @Tags         releases
// @Security     Bearer
// @Param        id   path  string  true  "ID de la liberación"
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/releases/{id}/reject [post]
func (h *ReleaseHandler) Reject(c *fiber.Ctx) error {
	if err := h.uc.RejectRelease(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PushForInspection godoc
// @Summary      Enviar la liberación a inspección
// @Description  Crea la inspección con los pasos de la plantilla en orden; a lo sumo una inspección abierta por liberación.
// @Tags         releases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la liberación"
// @Param        body  body  dto.PushForInspectionRequest  true  "Código de plantilla"
// @Success      201   {object}  dto.InspectionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/releases/{id}/push-for-inspection [post]
func (h *ReleaseHandler) PushForInspection(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.PushForInspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TemplateCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "template_code es requerido"})
	}
	insp, err := h.uc.PushForInspection(c.Context(), companyID, GetUserID(c), c.Params("id"), in.TemplateCode)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.inspectionUC.GetByID(companyID, insp.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInspections godoc
// @Summary      Listar pasadas de inspección de una liberación
// @Tags         releases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la liberación"
// @Success      200  {array}   dto.InspectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/releases/{id}/inspections [get]
func (h *ReleaseHandler) ListInspections(c *fiber.Ctx) error {
	out, err := h.inspectionUC.ListByRelease(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeliveryNote godoc
// @Summary      Descargar la nota de entrega (PDF) de una liberación aprobada
// @Tags         releases
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la liberación"
// @Success      200  {file}    binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/releases/{id}/delivery-note [get]
func (h *ReleaseHandler) DeliveryNote(c *fiber.Ctx) error {
	pdfBytes, err := h.deliveryUC.GeneratePDF(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="nota-entrega.pdf"`)
	return c.Send(pdfBytes)
}

// ListTemplates godoc
// @Summary      Listar plantillas de inspección disponibles
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TemplateResponse
// @Router       /api/templates [get]
func (h *ReleaseHandler) ListTemplates(c *fiber.Ctx) error {
	out, err := h.uc.ListTemplates(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
