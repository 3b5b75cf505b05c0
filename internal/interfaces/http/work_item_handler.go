package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
)

// WorkItemHandler maneja las peticiones HTTP para renglones de trabajo.
type WorkItemHandler struct {
	uc *production.WorkItemUseCase
}

// NewWorkItemHandler construye el handler.
func NewWorkItemHandler(uc *production.WorkItemUseCase) *WorkItemHandler {
	return &WorkItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear renglón de trabajo
// @Tags         work-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkItemRequest  true  "Datos del renglón"
// @Success      201   {object}  dto.WorkItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/work-items [post]
func (h *WorkItemHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateWorkItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}
	out, err := h.uc.Create(companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener renglón por ID con sus saldos
// @Tags         work-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del renglón"
// @Success      200  {object}  dto.WorkItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-items/{id} [get]
func (h *WorkItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(GetCompanyID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar renglones de trabajo
// @Tags         work-items
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.WorkItemListResponse
// @Router       /api/work-items [get]
func (h *WorkItemHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(companyID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir un renglón (solo admin)
// @Description  La cantidad pedida nunca puede quedar por debajo de lo ya liberado.
// @Tags         work-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del renglón"
// @Param        body  body  dto.UpdateWorkItemRequest  true  "Campos a corregir"
// @Success      200   {object}  dto.WorkItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-items/{id} [put]
func (h *WorkItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateWorkItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
