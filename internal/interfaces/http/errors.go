package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP. Los errores
// tipados de cantidades llevan el techo en el mensaje para mostrarlo al
// operador tal cual.
func respondError(c *fiber.Ctx, err error) error {
	var qty *domain.QuantityExceededError
	if errors.As(err, &qty) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "QUANTITY_EXCEEDED", Message: qty.Error()})
	}
	var stepQty *domain.StepQuantityExceededError
	if errors.As(err, &stepQty) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STEP_QUANTITY_EXCEEDED", Message: stepQty.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrLockedForEdit):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOCKED_FOR_EDIT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidOverrideState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_OVERRIDE_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
