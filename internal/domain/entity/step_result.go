package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un paso de inspección (siempre derivados, nunca sobrescritos).
const (
	StepStatusPending  = "PENDING"
	StepStatusApproved = "APPROVED"
	StepStatusFailed   = "FAILED"
	StepStatusHold     = "HOLD"
)

// StepResult representa el veredicto de una estación dentro de una inspección.
// Pertenece a exactamente una InspectionRecord; se crea en el orden de la
// plantilla y solo lo muta un inspector al registrar su veredicto.
type StepResult struct {
	ID           string
	InspectionID string
	Seq          int // posición según la plantilla
	Name         string
	ApprovedQty  decimal.Decimal
	RejectedQty  decimal.Decimal
	HoldQty      decimal.Decimal
	Remarks      string
	Status       string
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Touched indica si el paso ya registró algún veredicto (no-PENDING).
// Una inspección con algún paso tocado bloquea la edición de su liberación.
func (s *StepResult) Touched() bool {
	return s.Status != StepStatusPending
}
