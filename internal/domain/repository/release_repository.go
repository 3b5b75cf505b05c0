package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// ReleaseRepository define el puerto de persistencia para ReleaseRecord.
// Todas las consultas excluyen liberaciones con soft delete.
type ReleaseRepository interface {
	Create(release *entity.ReleaseRecord) error
	GetByID(id string) (*entity.ReleaseRecord, error)
	GetForUpdate(id string) (*entity.ReleaseRecord, error)
	// ListByWorkItem devuelve las liberaciones no borradas del renglón,
	// ordenadas por CreatedAt descendente (orden del saldo corrido).
	ListByWorkItem(workItemID string) ([]*entity.ReleaseRecord, error)
	Update(release *entity.ReleaseRecord) error
	UpdateStatus(id, status string) error
	SoftDelete(id string) error
}
