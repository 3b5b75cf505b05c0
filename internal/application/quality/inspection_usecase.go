package quality

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/drawing"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	domainquality "github.com/jhoicas/Produccion-api/internal/domain/quality"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// InspectionUseCase casos de uso de inspección: guardado todo-o-nada de
// veredictos de pasos, sobrescrituras de cabecera y retroalimentación del
// estado agregado hacia la liberación (ciclo de retrabajo).
type InspectionUseCase struct {
	txRunner       TxRunner
	inspectionRepo repository.InspectionRepository
	releaseRepo    repository.ReleaseRepository
	notifier       DeliveryNotifier
	log            *logger.Logger
}

// NewInspectionUseCase construye el caso de uso.
func NewInspectionUseCase(
	txRunner TxRunner,
	inspectionRepo repository.InspectionRepository,
	releaseRepo repository.ReleaseRepository,
	notifier DeliveryNotifier,
	log *logger.Logger,
) *InspectionUseCase {
	return &InspectionUseCase{
		txRunner:       txRunner,
		inspectionRepo: inspectionRepo,
		releaseRepo:    releaseRepo,
		notifier:       notifier,
		log:            log,
	}
}

// SaveSteps guarda los veredictos editados en una sola transacción: primero se
// validan TODOS los pasos contra el techo vigente (inspectedQuantity antes del
// guardado); si alguno falla no se persiste ninguno. En éxito se persisten los
// pasos, se recalculan los totales derivados y, si el llamador es privilegiado
// y ningún total está sobrescrito, también los totales de cabecera. El nuevo
// estado agregado retroalimenta a la liberación; la transición a APPROVED
// dispara la notificación de entrega exactamente una vez, tras el commit.
func (uc *InspectionUseCase) SaveSteps(ctx context.Context, companyID, userID, role, inspectionID string, in dto.SaveStepsRequest) (*dto.InspectionResponse, error) {
	var resp *dto.InspectionResponse
	approvedInspectionID := ""

	err := uc.txRunner.RunQuality(ctx, func(
		inspectionRepo repository.InspectionRepository,
		releaseRepo repository.ReleaseRepository,
	) error {
		insp, err := lockOwnedInspection(inspectionRepo, companyID, inspectionID)
		if err != nil {
			return err
		}
		if !insp.Open() {
			return domain.ErrConflict
		}
		steps, err := inspectionRepo.ListSteps(insp.ID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.StepResult, len(steps))
		for _, s := range steps {
			byID[s.ID] = s
		}

		// Fase 1: validar todas las ediciones contra el techo vigente.
		ceiling := insp.Inspected.Value
		edited := make([]*entity.StepResult, 0, len(in.Steps))
		for _, edit := range in.Steps {
			step, ok := byID[edit.StepID]
			if !ok {
				return domain.ErrNotFound
			}
			if edit.ApprovedQty.LessThan(decimal.Zero) || edit.RejectedQty.LessThan(decimal.Zero) || edit.HoldQty.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			claimed := edit.ApprovedQty.Add(edit.RejectedQty).Add(edit.HoldQty)
			if claimed.GreaterThan(ceiling) {
				return &domain.StepQuantityExceededError{Step: step.Name, Ceiling: ceiling}
			}
			edited = append(edited, step)
		}

		// Fase 2: aplicar y persistir todas las ediciones.
		now := time.Now()
		for i, edit := range in.Steps {
			step := edited[i]
			step.ApprovedQty = edit.ApprovedQty
			step.RejectedQty = edit.RejectedQty
			step.HoldQty = edit.HoldQty
			step.Remarks = edit.Remarks
			step.Status = domainquality.StepStatus(edit.ApprovedQty, edit.RejectedQty, edit.HoldQty)
			step.UpdatedBy = userID
			step.UpdatedAt = now
			if err := inspectionRepo.UpdateStep(step); err != nil {
				return err
			}
		}

		// Fase 3: recomputar totales derivados y persistir la cabecera.
		RecomputeDerived(insp, steps)
		insp.UpdatedAt = now
		privileged := role == entity.RoleAdmin
		noOverrides := !insp.Approved.Overridden && !insp.Rejected.Overridden && !insp.Hold.Overridden
		if privileged && noOverrides {
			if err := inspectionRepo.UpdateHeader(insp); err != nil {
				return err
			}
		} else if err := inspectionRepo.UpdateStatus(insp.ID, insp.Status); err != nil {
			return err
		}

		// Fase 4: retroalimentar el estado de la liberación.
		approved, err := uc.applyWorkflowFeedback(inspectionRepo, releaseRepo, insp, now)
		if err != nil {
			return err
		}
		if approved {
			approvedInspectionID = insp.ID
		}

		resp = toInspectionResponse(insp, steps)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if approvedInspectionID != "" {
		// Fuera de la transacción: el fallo del colaborador no revierte la aprobación.
		if err := uc.notifier.ReleaseApproved(ctx, approvedInspectionID); err != nil {
			uc.log.Error().Err(err).Str("inspection_id", approvedInspectionID).Msg("notificación de entrega falló")
		}
	}
	return resp, nil
}

// applyWorkflowFeedback traduce el estado agregado de la inspección al estado
// de su liberación cuando esta sigue en PENDING_INSPECTION:
// APPROVED → liberación APPROVED (pasada cerrada); REJECTED → REWORK, el
// retrabajo es la remediación por defecto, nunca REJECTED automático;
// HOLD/IN_PROGRESS/PENDING dejan la liberación donde está.
func (uc *InspectionUseCase) applyWorkflowFeedback(
	inspectionRepo repository.InspectionRepository,
	releaseRepo repository.ReleaseRepository,
	insp *entity.InspectionRecord,
	now time.Time,
) (approved bool, err error) {
	release, err := releaseRepo.GetForUpdate(insp.ReleaseID)
	if err != nil {
		return false, err
	}
	if release == nil || release.Status != entity.ReleaseStatusPendingInspection {
		return false, nil
	}
	switch insp.Status {
	case entity.InspectionStatusApproved:
		if err := releaseRepo.UpdateStatus(release.ID, entity.ReleaseStatusApproved); err != nil {
			return false, err
		}
		if err := inspectionRepo.Close(insp.ID, now); err != nil {
			return false, err
		}
		return true, nil
	case entity.InspectionStatusRejected:
		if err := releaseRepo.UpdateStatus(release.ID, entity.ReleaseStatusRework); err != nil {
			return false, err
		}
		if err := inspectionRepo.Close(insp.ID, now); err != nil {
			return false, err
		}
	}
	return false, nil
}

// SetOverride congela un total de cabecera a un valor manual (privilegiado) y
// recalcula el resto de campos derivados con el nuevo estado.
func (uc *InspectionUseCase) SetOverride(ctx context.Context, companyID, inspectionID string, in dto.SetOverrideRequest) (*dto.InspectionResponse, error) {
	return uc.mutateHeader(ctx, companyID, inspectionID, func(insp *entity.InspectionRecord) error {
		return SetOverride(insp, in.Field, in.Value)
	})
}

// ClearOverride devuelve un total de cabecera a modo derivado; la siguiente
// recomputación (inmediata) vuelve a derivarlo de los pasos.
func (uc *InspectionUseCase) ClearOverride(ctx context.Context, companyID, inspectionID string, in dto.ClearOverrideRequest) (*dto.InspectionResponse, error) {
	return uc.mutateHeader(ctx, companyID, inspectionID, func(insp *entity.InspectionRecord) error {
		return ClearOverride(insp, in.Field)
	})
}

// UpdateMeta edita lote de planos y transmittal de la inspección, de forma
// independiente de la liberación.
func (uc *InspectionUseCase) UpdateMeta(ctx context.Context, companyID, inspectionID string, in dto.UpdateInspectionMetaRequest) (*dto.InspectionResponse, error) {
	return uc.mutateHeader(ctx, companyID, inspectionID, func(insp *entity.InspectionRecord) error {
		if in.Entries != nil {
			insp.DrawingBatch = drawing.Format(production.EntriesFromDTO(in.Entries))
		}
		if in.TransmittalRef != nil {
			insp.TransmittalRef = *in.TransmittalRef
		}
		return nil
	})
}

func (uc *InspectionUseCase) mutateHeader(ctx context.Context, companyID, inspectionID string, mutate func(*entity.InspectionRecord) error) (*dto.InspectionResponse, error) {
	var resp *dto.InspectionResponse
	err := uc.txRunner.RunQuality(ctx, func(
		inspectionRepo repository.InspectionRepository,
		_ repository.ReleaseRepository,
	) error {
		insp, err := lockOwnedInspection(inspectionRepo, companyID, inspectionID)
		if err != nil {
			return err
		}
		if !insp.Open() {
			return domain.ErrConflict
		}
		if err := mutate(insp); err != nil {
			return err
		}
		steps, err := inspectionRepo.ListSteps(insp.ID)
		if err != nil {
			return err
		}
		RecomputeDerived(insp, steps)
		insp.UpdatedAt = time.Now()
		if err := inspectionRepo.UpdateHeader(insp); err != nil {
			return err
		}
		resp = toInspectionResponse(insp, steps)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetByID devuelve la inspección con sus pasos.
func (uc *InspectionUseCase) GetByID(companyID, id string) (*dto.InspectionResponse, error) {
	insp, err := uc.inspectionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if insp == nil || insp.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if insp.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	steps, err := uc.inspectionRepo.ListSteps(insp.ID)
	if err != nil {
		return nil, err
	}
	return toInspectionResponse(insp, steps), nil
}

// ListByRelease devuelve todas las pasadas de inspección de la liberación en
// orden cronológico, cada una con sus pasos.
func (uc *InspectionUseCase) ListByRelease(companyID, releaseID string) ([]*dto.InspectionResponse, error) {
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
	passes, err := uc.inspectionRepo.ListByRelease(releaseID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InspectionResponse, 0, len(passes))
	for _, insp := range passes {
		steps, err := uc.inspectionRepo.ListSteps(insp.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toInspectionResponse(insp, steps))
	}
	return out, nil
}

// lockOwnedInspection bloquea la fila de la inspección y verifica tenencia.
func lockOwnedInspection(inspectionRepo repository.InspectionRepository, companyID, id string) (*entity.InspectionRecord, error) {
	insp, err := inspectionRepo.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if insp == nil || insp.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if insp.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return insp, nil
}

func toQuantityFieldDTO(f entity.QuantityField) dto.QuantityFieldDTO {
	return dto.QuantityFieldDTO{Value: f.Value, Overridden: f.Overridden}
}

func toInspectionResponse(insp *entity.InspectionRecord, steps []*entity.StepResult) *dto.InspectionResponse {
	out := &dto.InspectionResponse{
		ID:             insp.ID,
		ReleaseID:      insp.ReleaseID,
		TemplateCode:   insp.TemplateCode,
		Inspected:      toQuantityFieldDTO(insp.Inspected),
		Approved:       toQuantityFieldDTO(insp.Approved),
		Rejected:       toQuantityFieldDTO(insp.Rejected),
		Hold:           toQuantityFieldDTO(insp.Hold),
		Entries:        production.EntriesToDTO(drawing.Parse(insp.DrawingBatch)),
		TransmittalRef: insp.TransmittalRef,
		Status:         insp.Status,
		Closed:         !insp.Open(),
		CreatedAt:      insp.CreatedAt,
		UpdatedAt:      insp.UpdatedAt,
	}
	for _, s := range steps {
		out.Steps = append(out.Steps, dto.StepResultResponse{
			ID:          s.ID,
			Seq:         s.Seq,
			Name:        s.Name,
			ApprovedQty: s.ApprovedQty,
			RejectedQty: s.RejectedQty,
			HoldQty:     s.HoldQty,
			Remarks:     s.Remarks,
			Status:      s.Status,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return out
}
