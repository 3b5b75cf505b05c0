package quality

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/quality"
)

// Reconciliación de totales de cabecera de una inspección: cada total es
// Derived | Overridden(valor). Un campo sobrescrito queda congelado frente a
// la re-derivación hasta que se limpie la sobrescritura; la identidad
// inspeccionado = aprobado + rechazado + retenido se mantiene en modo derivado
// incluso bajo sobrescrituras parciales de los otros campos.

// RecomputeDerived recalcula los campos no sobrescritos desde los pasos y el
// estado agregado de la inspección.
func RecomputeDerived(insp *entity.InspectionRecord, steps []*entity.StepResult) {
	totals := quality.Aggregate(steps)
	if !insp.Approved.Overridden {
		insp.Approved.Value = totals.FinalApproved
	}
	if !insp.Rejected.Overridden {
		insp.Rejected.Value = totals.TotalRejected
	}
	if !insp.Hold.Overridden {
		insp.Hold.Value = totals.TotalHold
	}
	if !insp.Inspected.Overridden {
		insp.Inspected.Value = insp.Approved.Value.Add(insp.Rejected.Value).Add(insp.Hold.Value)
	}
	insp.Status = quality.InspectionStatus(quality.StatusesOf(steps))
}

// SetOverride congela un campo de cabecera a un valor manual.
func SetOverride(insp *entity.InspectionRecord, field string, value decimal.Decimal) error {
	f, err := fieldRef(insp, field)
	if err != nil {
		return err
	}
	if value.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	*f = entity.OverriddenQuantity(value)
	return nil
}

// ClearOverride devuelve un campo a modo derivado; falla si el campo no
// estaba sobrescrito (el llamador no manejó el estado correctamente).
func ClearOverride(insp *entity.InspectionRecord, field string) error {
	f, err := fieldRef(insp, field)
	if err != nil {
		return err
	}
	if !f.Overridden {
		return domain.ErrInvalidOverrideState
	}
	f.Overridden = false
	return nil
}

func fieldRef(insp *entity.InspectionRecord, field string) (*entity.QuantityField, error) {
	switch field {
	case entity.FieldInspected:
		return &insp.Inspected, nil
	case entity.FieldApproved:
		return &insp.Approved, nil
	case entity.FieldRejected:
		return &insp.Rejected, nil
	case entity.FieldHold:
		return &insp.Hold, nil
	}
	return nil, domain.ErrInvalidOverrideState
}
