package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkItem representa un renglón de trabajo pedido (orden de producción).
// OrderedQuantity es inmutable una vez existen liberaciones, salvo corrección
// administrativa; nunca puede quedar por debajo de lo ya liberado.
type WorkItem struct {
	ID              string
	CompanyID       string
	Code            string // código del renglón dentro del pedido, único por empresa
	Description     string
	OrderedQuantity decimal.Decimal
	Unit            string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time // soft delete
}
