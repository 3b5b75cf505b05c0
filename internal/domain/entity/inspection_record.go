package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados agregados de una inspección (derivados de sus pasos).
const (
	InspectionStatusPending    = "PENDING"
	InspectionStatusInProgress = "IN_PROGRESS"
	InspectionStatusApproved   = "APPROVED"
	InspectionStatusHold       = "HOLD"
	InspectionStatusRejected   = "REJECTED"
)

// Campos de cabecera sobrescribibles de una inspección.
const (
	FieldInspected = "inspected"
	FieldApproved  = "approved"
	FieldRejected  = "rejected"
	FieldHold      = "hold"
)

// QuantityField es un total de cabecera con estado Derived | Overridden(valor).
// Derivado: se recalcula desde los pasos en cada recomputación.
// Sobrescrito: queda congelado al valor manual hasta limpiar la sobrescritura.
type QuantityField struct {
	Value      decimal.Decimal
	Overridden bool
}

// DerivedQuantity construye un campo en modo derivado.
func DerivedQuantity(v decimal.Decimal) QuantityField {
	return QuantityField{Value: v}
}

// OverriddenQuantity construye un campo congelado a un valor manual.
func OverriddenQuantity(v decimal.Decimal) QuantityField {
	return QuantityField{Value: v, Overridden: true}
}

// InspectionRecord representa una pasada de inspección sobre la cantidad de una
// liberación. Los pasos se crean en el orden de la plantilla al crear la
// inspección; la plantilla es inmutable una vez existe la inspección.
type InspectionRecord struct {
	ID           string
	CompanyID    string
	ReleaseID    string
	TemplateCode string

	// Totales de cabecera. Inspected es el techo para las cantidades de los
	// pasos; en modo derivado vale Approved+Rejected+Hold.
	Inspected QuantityField
	Approved  QuantityField
	Rejected  QuantityField
	Hold      QuantityField

	// DrawingBatch/TransmittalRef se copian de la liberación al crear la
	// inspección y después se editan de forma independiente.
	DrawingBatch   string
	TransmittalRef string

	Status      string // agregado de los pasos, ver quality.InspectionStatus
	InspectedBy string
	ClosedAt    *time.Time // pasada terminal (aprobada o enviada a retrabajo)
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Open indica si la inspección sigue activa (a lo sumo una abierta por liberación).
func (i *InspectionRecord) Open() bool {
	return i.ClosedAt == nil && i.DeletedAt == nil
}
