package production

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la secuencia leer-validar-escribir
// del libro de cantidades sea atómica: dos liberaciones concurrentes del mismo
// renglón se serializan por el bloqueo de fila del WorkItem.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		workItemRepo repository.WorkItemRepository,
		releaseRepo repository.ReleaseRepository,
		inspectionRepo repository.InspectionRepository,
	) error) error
}
