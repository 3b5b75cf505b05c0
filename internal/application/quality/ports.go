package quality

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Produccion-api/internal/domain/drawing"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con repos
// atados a esa tx. El guardado de pasos más la recomputación de cabecera y la
// retroalimentación al estado de la liberación son una sola unidad atómica:
// nunca se observa una aplicación parcial.
type TxRunner interface {
	RunQuality(ctx context.Context, fn func(
		inspectionRepo repository.InspectionRepository,
		releaseRepo repository.ReleaseRepository,
	) error) error
}

// DeliveryNotifier colaborador externo de notas de entrega. Se invoca
// exactamente una vez por transición de la liberación a APPROVED, después del
// commit; su fallo nunca revierte la aprobación.
type DeliveryNotifier interface {
	ReleaseApproved(ctx context.Context, inspectionID string) error
}

// DeliveryNoteData datos para la representación PDF de la nota de entrega.
type DeliveryNoteData struct {
	CompanyName     string
	WorkItemCode    string
	WorkItemDesc    string
	Unit            string
	ReleaseQuantity decimal.Decimal
	ApprovedQty     decimal.Decimal
	Entries         []drawing.Entry
	TransmittalRef  string
	InspectionID    string
	ApprovedAt      time.Time
}

// DeliveryNotePDFGenerator genera el PDF de la nota de entrega.
type DeliveryNotePDFGenerator interface {
	Generate(data DeliveryNoteData) ([]byte, error)
}
