package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// WorkItemRepository define el puerto de persistencia para WorkItem.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar la
// validación del libro de cantidades frente a liberaciones concurrentes.
type WorkItemRepository interface {
	Create(item *entity.WorkItem) error
	GetByID(id string) (*entity.WorkItem, error)
	GetForUpdate(id string) (*entity.WorkItem, error)
	Update(item *entity.WorkItem) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.WorkItem, error)
	SoftDelete(id string) error
}
