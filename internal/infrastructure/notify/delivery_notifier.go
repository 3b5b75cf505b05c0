// Package notify implementa los colaboradores de notificación externos.
package notify

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/application/quality"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

var _ quality.DeliveryNotifier = (*LogDeliveryNotifier)(nil)

// LogDeliveryNotifier notifica la aprobación de una liberación registrándola
// en el log estructurado. Punto de extensión para integraciones futuras
// (correo, webhook hacia el ERP).
type LogDeliveryNotifier struct {
	log *logger.Logger
}

// NewLogDeliveryNotifier construye el notificador.
func NewLogDeliveryNotifier(log *logger.Logger) *LogDeliveryNotifier {
	return &LogDeliveryNotifier{log: log}
}

// ReleaseApproved registra la aprobación. Se invoca una sola vez por
// transición a APPROVED, después del commit.
func (n *LogDeliveryNotifier) ReleaseApproved(_ context.Context, inspectionID string) error {
	n.log.Info().
		Str("inspection_id", inspectionID).
		Msg("liberación aprobada: nota de entrega disponible")
	return nil
}
