package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkItemRequest entrada para crear un renglón de trabajo.
type CreateWorkItemRequest struct {
	Code            string          `json:"code" validate:"required,min=1,max=60"`
	Description     string          `json:"description" validate:"omitempty,max=500"`
	OrderedQuantity decimal.Decimal `json:"ordered_quantity" validate:"required"`
	Unit            string          `json:"unit" validate:"omitempty,max=20"`
}

// UpdateWorkItemRequest corrección administrativa de un renglón. La cantidad
// pedida nunca puede quedar por debajo de lo ya liberado.
type UpdateWorkItemRequest struct {
	Description     *string          `json:"description"`
	OrderedQuantity *decimal.Decimal `json:"ordered_quantity"`
	Unit            *string          `json:"unit"`
}

// WorkItemResponse salida de un renglón con sus saldos.
type WorkItemResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Description      string          `json:"description"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	Unit             string          `json:"unit"`
	ReleasedQuantity decimal.Decimal `json:"released_quantity"`
	Remaining        decimal.Decimal `json:"remaining"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// WorkItemListResponse listado paginado de renglones.
type WorkItemListResponse struct {
	Items []WorkItemResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
