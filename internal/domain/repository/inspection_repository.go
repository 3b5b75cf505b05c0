package repository

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// InspectionRepository define el puerto de persistencia para InspectionRecord
// y sus StepResult (los pasos viven dentro del agregado de la inspección).
type InspectionRepository interface {
	// Create persiste la cabecera y sus pasos en orden de plantilla.
	Create(insp *entity.InspectionRecord, steps []*entity.StepResult) error
	GetByID(id string) (*entity.InspectionRecord, error)
	GetForUpdate(id string) (*entity.InspectionRecord, error)
	// GetOpenByRelease devuelve la inspección abierta (no cerrada, no borrada)
	// de la liberación, o nil si no hay.
	GetOpenByRelease(releaseID string) (*entity.InspectionRecord, error)
	ListByRelease(releaseID string) ([]*entity.InspectionRecord, error)
	UpdateHeader(insp *entity.InspectionRecord) error
	// UpdateStatus persiste solo el estado agregado (cuando los totales
	// derivados no deben escribirse, p. ej. guardado no privilegiado).
	UpdateStatus(id, status string) error
	Close(id string, at time.Time) error
	SoftDelete(id string) error

	ListSteps(inspectionID string) ([]*entity.StepResult, error)
	UpdateStep(step *entity.StepResult) error
	// ReleaseHasTouchedSteps indica si alguna inspección de la liberación
	// tiene algún paso no-PENDING (bloquea edición/borrado de la liberación).
	ReleaseHasTouchedSteps(releaseID string) (bool, error)
}
