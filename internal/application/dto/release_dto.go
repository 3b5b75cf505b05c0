package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DrawingEntryDTO una línea del lote de planos.
type DrawingEntryDTO struct {
	DrawingNo string `json:"drawing_no"`
	Quantity  string `json:"quantity"`
	Unit      string `json:"unit"`
	RFFRef    string `json:"rff_ref"`
}

// CreateReleaseRequest entrada para liberar cantidad de un renglón. La cantidad
// de la liberación es la suma de las líneas no vacías del lote de planos.
type CreateReleaseRequest struct {
	WorkItemID     string            `json:"work_item_id" validate:"required,uuid"`
	Entries        []DrawingEntryDTO `json:"entries" validate:"required,min=1"`
	TransmittalRef string            `json:"transmittal_ref" validate:"omitempty,max=60"`
}

// UpdateReleaseRequest edición de una liberación aún no tocada por inspección.
type UpdateReleaseRequest struct {
	Entries        []DrawingEntryDTO `json:"entries"`
	TransmittalRef *string           `json:"transmittal_ref"`
}

// PushForInspectionRequest envío a inspección con una plantilla de estaciones.
type PushForInspectionRequest struct {
	TemplateCode string `json:"template_code" validate:"required,min=1,max=60"`
}

// ReleaseResponse salida de una liberación.
type ReleaseResponse struct {
	ID              string            `json:"id"`
	WorkItemID      string            `json:"work_item_id"`
	ReleaseQuantity decimal.Decimal   `json:"release_quantity"`
	Entries         []DrawingEntryDTO `json:"entries"`
	DrawingBatch    string            `json:"drawing_batch"`
	TransmittalRef  string            `json:"transmittal_ref"`
	Status          string            `json:"status"`
	// Balance: cantidad pedida menos lo acumulado liberado hasta esta
	// liberación inclusive (orden cronológico inverso), para revisión del operador.
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ReleaseListResponse liberaciones de un renglón con saldo corrido.
type ReleaseListResponse struct {
	WorkItemID string            `json:"work_item_id"`
	Releases   []ReleaseResponse `json:"releases"`
}

// PasteImportRequest entrada del pegado masivo desde hoja de cálculo.
type PasteImportRequest struct {
	RawText        string            `json:"raw_text" validate:"required"`
	InsertionIndex int               `json:"insertion_index" validate:"min=0"`
	Entries        []DrawingEntryDTO `json:"entries"`
}

// PasteImportResponse secuencia empalmada; Applied=false cuando el texto se
// trata como tecleo normal (una sola fila sin tabulador).
type PasteImportResponse struct {
	Applied bool              `json:"applied"`
	Entries []DrawingEntryDTO `json:"entries"`
}
