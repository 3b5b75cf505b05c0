package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrLockedForEdit: la liberación/inspección ya fue tocada por un inspector
	// (algún paso no-PENDING) y no admite edición ni borrado de cantidades.
	ErrLockedForEdit = errors.New("registro bloqueado: la inspección ya fue iniciada")

	// ErrInvalidOverrideState: se intentó editar un total de cabecera sin
	// manejar correctamente el estado derivado/sobrescrito del campo.
	ErrInvalidOverrideState = errors.New("estado de sobrescritura inválido")
)

// QuantityExceededError: una liberación (o su edición) sobrepasaría la cantidad
// pedida del renglón. Ceiling es el máximo permitido para la operación.
type QuantityExceededError struct {
	Ceiling decimal.Decimal
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("cantidad excede lo permitido (máximo %s)", e.Ceiling.String())
}

// StepQuantityExceededError: un paso de inspección declara más cantidad que el
// techo de la inspección. Step nombra el paso ofensor.
type StepQuantityExceededError struct {
	Step    string
	Ceiling decimal.Decimal
}

func (e *StepQuantityExceededError) Error() string {
	return fmt.Sprintf("paso %q excede la cantidad inspeccionada (máximo %s)", e.Step, e.Ceiling.String())
}
