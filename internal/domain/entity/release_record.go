package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una liberación de producción.
const (
	ReleaseStatusPlanning          = "PLANNING"
	ReleaseStatusInProduction      = "IN_PRODUCTION"
	ReleaseStatusPendingInspection = "PENDING_INSPECTION"
	ReleaseStatusApproved          = "APPROVED"
	ReleaseStatusRework            = "REWORK"
	ReleaseStatusRejected          = "REJECTED"
)

// ValidReleaseTransitions transiciones legales del ciclo de vida de una liberación.
// REJECTED solo es alcanzable por acción administrativa explícita; la agregación
// de inspección nunca lo produce (un fallo agregado envía a REWORK).
var ValidReleaseTransitions = map[string][]string{
	ReleaseStatusPlanning:          {ReleaseStatusInProduction, ReleaseStatusPendingInspection},
	ReleaseStatusInProduction:      {ReleaseStatusPendingInspection},
	ReleaseStatusPendingInspection: {ReleaseStatusApproved, ReleaseStatusRework, ReleaseStatusRejected},
	ReleaseStatusRework:            {ReleaseStatusPendingInspection, ReleaseStatusRejected},
}

// CanTransitionRelease indica si el cambio de estado from→to es legal.
func CanTransitionRelease(from, to string) bool {
	for _, s := range ValidReleaseTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ReleaseRecord representa una liberación parcial de la cantidad de un WorkItem
// hacia producción. Las liberaciones borradas (soft delete) quedan fuera de
// todas las sumas del libro de cantidades.
type ReleaseRecord struct {
	ID              string
	CompanyID       string
	WorkItemID      string
	ReleaseQuantity decimal.Decimal
	DrawingBatch    string // texto compacto multi-plano, ver paquete drawing
	TransmittalRef  string
	Status          string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// Editable indica si la liberación admite edición libre de cantidades
// (solo en PLANNING o IN_PRODUCTION; el bloqueo por inspección iniciada
// se valida aparte contra los pasos de la inspección).
func (r *ReleaseRecord) Editable() bool {
	return r.Status == ReleaseStatusPlanning || r.Status == ReleaseStatusInProduction
}
