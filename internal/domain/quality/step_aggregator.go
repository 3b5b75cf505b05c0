package quality

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// Agregación de pasos de inspección (servicio de dominio puro).
//
// Modelo de compuerta en serie: la salida aprobada del lote no puede superar
// lo que dejó pasar la estación más restrictiva (mínimo), mientras que
// rechazos y retenciones registrados en estaciones distintas se suman de
// forma independiente.

// StepStatus clasifica un paso por sus cantidades. La precedencia es fija:
// rechazo > retención > aprobación > pendiente; una estación que registra
// rechazo y aprobación a la vez queda FAILED (cualquier defecto confirmado
// bloquea el lote en esa estación).
func StepStatus(approvedQty, rejectedQty, holdQty decimal.Decimal) string {
	switch {
	case rejectedQty.GreaterThan(decimal.Zero):
		return entity.StepStatusFailed
	case holdQty.GreaterThan(decimal.Zero):
		return entity.StepStatusHold
	case approvedQty.GreaterThan(decimal.Zero):
		return entity.StepStatusApproved
	default:
		return entity.StepStatusPending
	}
}

// InspectionStatus deriva el estado agregado de la inspección desde los
// estados de sus pasos.
func InspectionStatus(stepStatuses []string) string {
	if len(stepStatuses) == 0 {
		return entity.InspectionStatusPending
	}
	anyHold := false
	anyTouched := false
	allApproved := true
	for _, s := range stepStatuses {
		switch s {
		case entity.StepStatusFailed:
			return entity.InspectionStatusRejected
		case entity.StepStatusHold:
			anyHold = true
		}
		if s != entity.StepStatusPending {
			anyTouched = true
		}
		if s != entity.StepStatusApproved {
			allApproved = false
		}
	}
	switch {
	case anyHold:
		return entity.InspectionStatusHold
	case allApproved:
		return entity.InspectionStatusApproved
	case anyTouched:
		return entity.InspectionStatusInProgress
	default:
		return entity.InspectionStatusPending
	}
}

// Totals agregados de inspección a partir de los pasos.
type Totals struct {
	FinalApproved decimal.Decimal // min(ApprovedQty) entre todos los pasos; secuencia vacía -> 0
	TotalRejected decimal.Decimal // suma de RejectedQty
	TotalHold     decimal.Decimal // suma de HoldQty
}

// Aggregate calcula los totales de cabecera desde los pasos. El mínimo incluye
// a los pasos sin veredicto (aprobado 0): un lote no está aprobado mientras
// alguna estación no lo haya dejado pasar.
func Aggregate(steps []*entity.StepResult) Totals {
	t := Totals{
		FinalApproved: decimal.Zero,
		TotalRejected: decimal.Zero,
		TotalHold:     decimal.Zero,
	}
	for i, s := range steps {
		if i == 0 || s.ApprovedQty.LessThan(t.FinalApproved) {
			t.FinalApproved = s.ApprovedQty
		}
		t.TotalRejected = t.TotalRejected.Add(s.RejectedQty)
		t.TotalHold = t.TotalHold.Add(s.HoldQty)
	}
	return t
}

// StatusesOf extrae los estados de una lista de pasos (ayuda para InspectionStatus).
func StatusesOf(steps []*entity.StepResult) []string {
	statuses := make([]string, len(steps))
	for i, s := range steps {
		statuses[i] = s.Status
	}
	return statuses
}
