package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuantityFieldDTO total de cabecera con su modo (derivado o sobrescrito).
type QuantityFieldDTO struct {
	Value      decimal.Decimal `json:"value"`
	Overridden bool            `json:"overridden"`
}

// StepEditDTO edición del veredicto de un paso.
type StepEditDTO struct {
	StepID      string          `json:"step_id" validate:"required,uuid"`
	ApprovedQty decimal.Decimal `json:"approved_qty"`
	RejectedQty decimal.Decimal `json:"rejected_qty"`
	HoldQty     decimal.Decimal `json:"hold_qty"`
	Remarks     string          `json:"remarks" validate:"omitempty,max=500"`
}

// SaveStepsRequest guardado todo-o-nada de veredictos de pasos.
type SaveStepsRequest struct {
	Steps []StepEditDTO `json:"steps" validate:"required,min=1"`
}

// SetOverrideRequest sobrescritura manual de un total de cabecera.
// Field: inspected | approved | rejected | hold.
type SetOverrideRequest struct {
	Field string          `json:"field" validate:"required,oneof=inspected approved rejected hold"`
	Value decimal.Decimal `json:"value"`
}

// ClearOverrideRequest vuelve un campo de cabecera a modo derivado.
type ClearOverrideRequest struct {
	Field string `json:"field" validate:"required,oneof=inspected approved rejected hold"`
}

// UpdateInspectionMetaRequest edición de lote de planos / transmittal de la
// inspección, independiente de la liberación.
type UpdateInspectionMetaRequest struct {
	Entries        []DrawingEntryDTO `json:"entries"`
	TransmittalRef *string           `json:"transmittal_ref"`
}

// StepResultResponse veredicto de una estación.
type StepResultResponse struct {
	ID          string          `json:"id"`
	Seq         int             `json:"seq"`
	Name        string          `json:"name"`
	ApprovedQty decimal.Decimal `json:"approved_qty"`
	RejectedQty decimal.Decimal `json:"rejected_qty"`
	HoldQty     decimal.Decimal `json:"hold_qty"`
	Remarks     string          `json:"remarks"`
	Status      string          `json:"status"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InspectionResponse cabecera de inspección con sus pasos.
type InspectionResponse struct {
	ID             string               `json:"id"`
	ReleaseID      string               `json:"release_id"`
	TemplateCode   string               `json:"template_code"`
	Inspected      QuantityFieldDTO     `json:"inspected"`
	Approved       QuantityFieldDTO     `json:"approved"`
	Rejected       QuantityFieldDTO     `json:"rejected"`
	Hold           QuantityFieldDTO     `json:"hold"`
	Entries        []DrawingEntryDTO    `json:"entries"`
	TransmittalRef string               `json:"transmittal_ref"`
	Status         string               `json:"status"`
	Closed         bool                 `json:"closed"`
	Steps          []StepResultResponse `json:"steps"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// TemplateResponse plantilla de inspección disponible.
type TemplateResponse struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	StepNames []string `json:"step_names"`
}
