package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/drawing"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ReleaseUseCase casos de uso del ciclo de vida de una liberación: creación y
// edición validadas contra el libro de cantidades, envío a inspección y
// transiciones administrativas. Toda escritura pasa por el TxRunner con la
// fila del WorkItem (o de la liberación) bloqueada.
type ReleaseUseCase struct {
	txRunner       TxRunner
	workItemRepo   repository.WorkItemRepository
	releaseRepo    repository.ReleaseRepository
	inspectionRepo repository.InspectionRepository
	templateRepo   repository.TemplateRepository
}

// NewReleaseUseCase construye el caso de uso.
func NewReleaseUseCase(
	txRunner TxRunner,
	workItemRepo repository.WorkItemRepository,
	releaseRepo repository.ReleaseRepository,
	inspectionRepo repository.InspectionRepository,
	templateRepo repository.TemplateRepository,
) *ReleaseUseCase {
	return &ReleaseUseCase{
		txRunner:       txRunner,
		workItemRepo:   workItemRepo,
		releaseRepo:    releaseRepo,
		inspectionRepo: inspectionRepo,
		templateRepo:   templateRepo,
	}
}

// releaseBatchQuantity suma las cantidades de las líneas no vacías del lote.
func releaseBatchQuantity(entries []drawing.Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if e.IsEmpty() {
			continue
		}
		sum = sum.Add(e.QuantityDecimal())
	}
	return sum
}

// CreateRelease valida contra el saldo del renglón (con su fila bloqueada) y
// crea la liberación en PLANNING. La operación es todo-o-nada: si la suma de
// líneas es <= 0 o excede el saldo no se aplica nada.
func (uc *ReleaseUseCase) CreateRelease(ctx context.Context, companyID, userID string, in dto.CreateReleaseRequest) (*dto.ReleaseResponse, error) {
	entries := EntriesFromDTO(in.Entries)
	candidate := releaseBatchQuantity(entries)

	var created *entity.ReleaseRecord
	err := uc.txRunner.Run(ctx, func(
		workItemRepo repository.WorkItemRepository,
		releaseRepo repository.ReleaseRepository,
		_ repository.InspectionRepository,
	) error {
		item, err := workItemRepo.GetForUpdate(in.WorkItemID)
		if err != nil {
			return err
		}
		if item == nil || item.DeletedAt != nil {
			return domain.ErrNotFound
		}
		if item.CompanyID != companyID {
			return domain.ErrForbidden
		}
		releases, err := releaseRepo.ListByWorkItem(item.ID)
		if err != nil {
			return err
		}
		if err := ValidateRelease(item, releases, candidate, decimal.Zero); err != nil {
			return err
		}
		now := time.Now()
		created = &entity.ReleaseRecord{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			WorkItemID:      item.ID,
			ReleaseQuantity: candidate,
			DrawingBatch:    drawing.Format(entries),
			TransmittalRef:  in.TransmittalRef,
			Status:          entity.ReleaseStatusPlanning,
			CreatedBy:       userID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return releaseRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return toReleaseResponse(created, nil), nil
}

// UpdateRelease edita lote/transmittal de una liberación no bloqueada. El
// término existingQuantity permite re-validar sin devolver primero la cantidad
// propia al saldo.
func (uc *ReleaseUseCase) UpdateRelease(ctx context.Context, companyID, id string, in dto.UpdateReleaseRequest) (*dto.ReleaseResponse, error) {
	var updated *entity.ReleaseRecord
	err := uc.txRunner.Run(ctx, func(
		workItemRepo repository.WorkItemRepository,
		releaseRepo repository.ReleaseRepository,
		inspectionRepo repository.InspectionRepository,
	) error {
		release, err := lockOwnedRelease(releaseRepo, companyID, id)
		if err != nil {
			return err
		}
		touched, err := inspectionRepo.ReleaseHasTouchedSteps(release.ID)
		if err != nil {
			return err
		}
		if touched {
			return domain.ErrLockedForEdit
		}
		if in.Entries != nil {
			entries := EntriesFromDTO(in.Entries)
			candidate := releaseBatchQuantity(entries)
			item, err := workItemRepo.GetForUpdate(release.WorkItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			releases, err := releaseRepo.ListByWorkItem(item.ID)
			if err != nil {
				return err
			}
			if err := ValidateRelease(item, releases, candidate, release.ReleaseQuantity); err != nil {
				return err
			}
			release.ReleaseQuantity = candidate
			release.DrawingBatch = drawing.Format(entries)
		}
		if in.TransmittalRef != nil {
			release.TransmittalRef = *in.TransmittalRef
		}
		release.UpdatedAt = time.Now()
		updated = release
		return releaseRepo.Update(release)
	})
	if err != nil {
		return nil, err
	}
	return toReleaseResponse(updated, nil), nil
}

// DeleteRelease marca la liberación como borrada (soft delete); queda fuera de
// todas las sumas del libro. Bloqueada si su inspección ya fue iniciada.
func (uc *ReleaseUseCase) DeleteRelease(ctx context.Context, companyID, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.WorkItemRepository,
		releaseRepo repository.ReleaseRepository,
		inspectionRepo repository.InspectionRepository,
	) error {
		release, err := lockOwnedRelease(releaseRepo, companyID, id)
		if err != nil {
			return err
		}
		touched, err := inspectionRepo.ReleaseHasTouchedSteps(release.ID)
		if err != nil {
			return err
		}
		if touched {
			return domain.ErrLockedForEdit
		}
		return releaseRepo.SoftDelete(release.ID)
	})
}

// StartProduction transición PLANNING → IN_PRODUCTION.
func (uc *ReleaseUseCase) StartProduction(ctx context.Context, companyID, id string) error {
	return uc.transition(ctx, companyID, id, entity.ReleaseStatusInProduction)
}

// RejectRelease transición administrativa explícita a REJECTED (solo admin en
// el router). La agregación de inspección nunca produce este estado.
func (uc *ReleaseUseCase) RejectRelease(ctx context.Context, companyID, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.WorkItemRepository,
		releaseRepo repository.ReleaseRepository,
		inspectionRepo repository.InspectionRepository,
	) error {
		release, err := lockOwnedRelease(releaseRepo, companyID, id)
		if err != nil {
			return err
		}
		if !entity.CanTransitionRelease(release.Status, entity.ReleaseStatusRejected) {
			return domain.ErrConflict
		}
		if open, err := inspectionRepo.GetOpenByRelease(release.ID); err != nil {
			return err
		} else if open != nil {
			if err := inspectionRepo.Close(open.ID, time.Now()); err != nil {
				return err
			}
		}
		return releaseRepo.UpdateStatus(release.ID, entity.ReleaseStatusRejected)
	})
}

// PushForInspection envía la liberación a inspección: válido desde PLANNING o
// IN_PRODUCTION (pasada inicial) o REWORK (re-inspección). Crea la inspección
// desde la plantilla con sus pasos en orden; a lo sumo una inspección abierta
// por liberación.
func (uc *ReleaseUseCase) PushForInspection(ctx context.Context, companyID, userID, id, templateCode string) (*entity.InspectionRecord, error) {
	template, err := uc.templateRepo.GetByCode(companyID, templateCode)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}

	var insp *entity.InspectionRecord
	err = uc.txRunner.Run(ctx, func(
		_ repository.WorkItemRepository,
		releaseRepo repository.ReleaseRepository,
		inspectionRepo repository.InspectionRepository,
	) error {
		release, err := lockOwnedRelease(releaseRepo, companyID, id)
		if err != nil {
			return err
		}
		if !entity.CanTransitionRelease(release.Status, entity.ReleaseStatusPendingInspection) {
			return domain.ErrConflict
		}
		if open, err := inspectionRepo.GetOpenByRelease(release.ID); err != nil {
			return err
		} else if open != nil {
			return domain.ErrConflict
		}

		now := time.Now()
		insp = &entity.InspectionRecord{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			ReleaseID:    release.ID,
			TemplateCode: template.Code,
			// El techo de los pasos arranca en la cantidad liberada: en modo
			// derivado la inspección nueva valdría cero y ningún paso podría
			// registrar cantidad alguna.
			Inspected:      entity.OverriddenQuantity(release.ReleaseQuantity),
			Approved:       entity.DerivedQuantity(decimal.Zero),
			Rejected:       entity.DerivedQuantity(decimal.Zero),
			Hold:           entity.DerivedQuantity(decimal.Zero),
			DrawingBatch:   release.DrawingBatch,
			TransmittalRef: release.TransmittalRef,
			Status:         entity.InspectionStatusPending,
			InspectedBy:    userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		steps := make([]*entity.StepResult, len(template.StepNames))
		for i, name := range template.StepNames {
			steps[i] = &entity.StepResult{
				ID:           uuid.New().String(),
				InspectionID: insp.ID,
				Seq:          i + 1,
				Name:         name,
				ApprovedQty:  decimal.Zero,
				RejectedQty:  decimal.Zero,
				HoldQty:      decimal.Zero,
				Status:       entity.StepStatusPending,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
		}
		if err := inspectionRepo.Create(insp, steps); err != nil {
			return err
		}
		return releaseRepo.UpdateStatus(release.ID, entity.ReleaseStatusPendingInspection)
	})
	if err != nil {
		return nil, err
	}
	return insp, nil
}

// GetByID devuelve una liberación de la empresa.
func (uc *ReleaseUseCase) GetByID(companyID, id string) (*dto.ReleaseResponse, error) {
	release, err := uc.releaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if release == nil || release.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if release.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toReleaseResponse(release, nil), nil
}

// ListByWorkItem devuelve las liberaciones del renglón con su saldo corrido.
func (uc *ReleaseUseCase) ListByWorkItem(companyID, workItemID string) (*dto.ReleaseListResponse, error) {
	item, err := uc.workItemRepo.GetByID(workItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	releases, err := uc.releaseRepo.ListByWorkItem(workItemID)
	if err != nil {
		return nil, err
	}
	out := &dto.ReleaseListResponse{WorkItemID: workItemID}
	for _, line := range RunningBalance(item, releases) {
		balance := line.Balance
		out.Releases = append(out.Releases, *toReleaseResponse(line.Release, &balance))
	}
	return out, nil
}

// ListTemplates devuelve las plantillas de inspección disponibles para la empresa.
func (uc *ReleaseUseCase) ListTemplates(companyID string) ([]dto.TemplateResponse, error) {
	templates, err := uc.templateRepo.List(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, dto.TemplateResponse{Code: t.Code, Name: t.Name, StepNames: t.StepNames})
	}
	return out, nil
}

func (uc *ReleaseUseCase) transition(ctx context.Context, companyID, id, to string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.WorkItemRepository,
		releaseRepo repository.ReleaseRepository,
		_ repository.InspectionRepository,
	) error {
		release, err := lockOwnedRelease(releaseRepo, companyID, id)
		if err != nil {
			return err
		}
		if !entity.CanTransitionRelease(release.Status, to) {
			return domain.ErrConflict
		}
		return releaseRepo.UpdateStatus(release.ID, to)
	})
}

// lockOwnedRelease bloquea la fila de la liberación y verifica tenencia.
func lockOwnedRelease(releaseRepo repository.ReleaseRepository, companyID, id string) (*entity.ReleaseRecord, error) {
	release, err := releaseRepo.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if release == nil || release.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if release.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return release, nil
}

func toReleaseResponse(r *entity.ReleaseRecord, balance *decimal.Decimal) *dto.ReleaseResponse {
	return &dto.ReleaseResponse{
		ID:              r.ID,
		WorkItemID:      r.WorkItemID,
		ReleaseQuantity: r.ReleaseQuantity,
		Entries:         EntriesToDTO(drawing.Parse(r.DrawingBatch)),
		DrawingBatch:    r.DrawingBatch,
		TransmittalRef:  r.TransmittalRef,
		Status:          r.Status,
		Balance:         balance,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
