package quality

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/drawing"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// DeliveryNoteUseCase genera la representación PDF de la nota de entrega de
// una liberación aprobada (colaborador de impresión, fuera del núcleo).
type DeliveryNoteUseCase struct {
	releaseRepo    repository.ReleaseRepository
	inspectionRepo repository.InspectionRepository
	workItemRepo   repository.WorkItemRepository
	companyRepo    repository.CompanyRepository
	pdf            DeliveryNotePDFGenerator
}

// NewDeliveryNoteUseCase construye el caso de uso.
func NewDeliveryNoteUseCase(
	releaseRepo repository.ReleaseRepository,
	inspectionRepo repository.InspectionRepository,
	workItemRepo repository.WorkItemRepository,
	companyRepo repository.CompanyRepository,
	pdf DeliveryNotePDFGenerator,
) *DeliveryNoteUseCase {
	return &DeliveryNoteUseCase{
		releaseRepo:    releaseRepo,
		inspectionRepo: inspectionRepo,
		workItemRepo:   workItemRepo,
		companyRepo:    companyRepo,
		pdf:            pdf,
	}
}

// GeneratePDF arma los datos de la nota desde la liberación aprobada y su
// última pasada de inspección.
func (uc *DeliveryNoteUseCase) GeneratePDF(companyID, releaseID string) ([]byte, error) {
	release, err := uc.releaseRepo.GetByID(releaseID)
	if err != nil {
		return nil, err
	}
	if release == nil || release.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if release.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if release.Status != entity.ReleaseStatusApproved {
		return nil, domain.ErrConflict
	}

	item, err := uc.workItemRepo.GetByID(release.WorkItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	// Última pasada aprobada de la liberación.
	passes, err := uc.inspectionRepo.ListByRelease(release.ID)
	if err != nil {
		return nil, err
	}
	var approved *entity.InspectionRecord
	for _, p := range passes {
		if p.Status == entity.InspectionStatusApproved {
			approved = p
		}
	}
	if approved == nil {
		return nil, domain.ErrConflict
	}

	data := DeliveryNoteData{
		WorkItemCode:    item.Code,
		WorkItemDesc:    item.Description,
		Unit:            item.Unit,
		ReleaseQuantity: release.ReleaseQuantity,
		ApprovedQty:     approved.Approved.Value,
		Entries:         drawing.Parse(release.DrawingBatch),
		TransmittalRef:  release.TransmittalRef,
		InspectionID:    approved.ID,
		ApprovedAt:      time.Now(),
	}
	if company != nil {
		data.CompanyName = company.Name
	}
	if approved.ClosedAt != nil {
		data.ApprovedAt = *approved.ClosedAt
	}
	return uc.pdf.Generate(data)
}
