package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/quality"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// InspectionHandler maneja las peticiones HTTP de inspecciones.
type InspectionHandler struct {
	uc *quality.InspectionUseCase
}

// NewInspectionHandler construye el handler.
func NewInspectionHandler(uc *quality.InspectionUseCase) *InspectionHandler {
	return &InspectionHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener inspección con sus pasos
// @Tags         inspections
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la inspección"
// @Success      200  {object}  dto.InspectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inspections/{id} [get]
func (h *InspectionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveSteps godoc
// @Summary      Guardar veredictos de pasos (todo-o-nada)
// @Description  Todas las ediciones se validan contra la cantidad inspeccionada vigente antes de persistir; si alguna excede el techo no se guarda ninguna.
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la inspección"
// @Param        body  body  dto.SaveStepsRequest  true  "Veredictos editados"
// @Success      200   {object}  dto.InspectionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inspections/{id}/steps [put]
func (h *InspectionHandler) SaveSteps(c *fiber.Ctx) error {
	var in dto.SaveStepsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Steps) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "steps es requerido"})
	}
	out, err := h.uc.SaveSteps(c.Context(), GetCompanyID(c), GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetOverride godoc
// @Summary      Sobrescribir un total de cabecera (solo admin)
// @Description  Congela el campo al valor manual hasta limpiar la sobrescritura.
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la inspección"
// @Param        body  body  dto.SetOverrideRequest  true  "Campo y valor"
// @Success      200   {object}  dto.InspectionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inspections/{id}/override [post]
func (h *InspectionHandler) SetOverride(c *fiber.Ctx) error {
	var in dto.SetOverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !validOverrideField(in.Field) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "field debe ser inspected, approved, rejected o hold"})
	}
	out, err := h.uc.SetOverride(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearOverride godoc
// @Summary      Limpiar la sobrescritura de un total de cabecera (solo admin)
// @Description  El campo vuelve a modo derivado y se recalcula de inmediato desde los pasos.
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la inspección"
// @Param        body  body  dto.ClearOverrideRequest  true  "Campo"
// @Success      200   {object}  dto.InspectionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inspections/{id}/override/clear [post]
func (h *InspectionHandler) ClearOverride(c *fiber.Ctx) error {
	var in dto.ClearOverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !validOverrideField(in.Field) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "field debe ser inspected, approved, rejected o hold"})
	}
	out, err := h.uc.ClearOverride(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateMeta godoc
// @Summary      Editar lote de planos y transmittal de la inspección
// @Description  Independiente de la liberación: editar aquí no toca el lote de la liberación.
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la inspección"
// @Param        body  body  dto.UpdateInspectionMetaRequest  true  "Campos a editar"
// @Success      200   {object}  dto.InspectionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inspections/{id}/meta [patch]
func (h *InspectionHandler) UpdateMeta(c *fiber.Ctx) error {
	var in dto.UpdateInspectionMetaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateMeta(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func validOverrideField(f string) bool {
	switch f {
	case entity.FieldInspected, entity.FieldApproved, entity.FieldRejected, entity.FieldHold:
		return true
	}
	return false
}
