package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// WorkItemUseCase casos de uso CRUD para renglones de trabajo. La cantidad
// pedida es inmutable una vez existen liberaciones, salvo corrección
// administrativa que nunca la deja por debajo de lo ya liberado.
type WorkItemUseCase struct {
	txRunner     TxRunner
	workItemRepo repository.WorkItemRepository
	releaseRepo  repository.ReleaseRepository
}

// NewWorkItemUseCase construye el caso de uso.
func NewWorkItemUseCase(txRunner TxRunner, workItemRepo repository.WorkItemRepository, releaseRepo repository.ReleaseRepository) *WorkItemUseCase {
	return &WorkItemUseCase{txRunner: txRunner, workItemRepo: workItemRepo, releaseRepo: releaseRepo}
}

// Create crea un renglón de trabajo nuevo.
func (uc *WorkItemUseCase) Create(companyID, userID string, in dto.CreateWorkItemRequest) (*dto.WorkItemResponse, error) {
	if in.Code == "" || in.OrderedQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.WorkItem{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Code:            in.Code,
		Description:     in.Description,
		OrderedQuantity: in.OrderedQuantity,
		Unit:            in.Unit,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.workItemRepo.Create(item); err != nil {
		return nil, err
	}
	return uc.toResponse(item, nil)
}

// GetByID devuelve el renglón con sus saldos.
func (uc *WorkItemUseCase) GetByID(companyID, id string) (*dto.WorkItemResponse, error) {
	item, err := uc.ownedItem(companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(item, nil)
}

// List lista los renglones de la empresa con paginación y saldos.
func (uc *WorkItemUseCase) List(companyID string, limit, offset int) (*dto.WorkItemListResponse, error) {
	items, err := uc.workItemRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.WorkItemListResponse{Page: dto.PageResponse{Limit: limit, Offset: offset}}
	for _, item := range items {
		resp, err := uc.toResponse(item, nil)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *resp)
	}
	return out, nil
}

// Update corrección administrativa. Con la fila bloqueada valida que la nueva
// cantidad pedida no quede por debajo de la suma liberada.
func (uc *WorkItemUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateWorkItemRequest) (*dto.WorkItemResponse, error) {
	var updated *entity.WorkItem
	var released decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		workItemRepo repository.WorkItemRepository,
		releaseRepo repository.ReleaseRepository,
		_ repository.InspectionRepository,
	) error {
		item, err := workItemRepo.GetForUpdate(id)
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
		released = ReleasedSum(releases)
		if in.OrderedQuantity != nil {
			if in.OrderedQuantity.LessThan(released) {
				return fmt.Errorf("%w: la cantidad pedida no puede ser menor a lo liberado (%s)", domain.ErrConflict, released)
			}
			item.OrderedQuantity = *in.OrderedQuantity
		}
		if in.Description != nil {
			item.Description = *in.Description
		}
		if in.Unit != nil {
			item.Unit = *in.Unit
		}
		item.UpdatedAt = time.Now()
		updated = item
		return workItemRepo.Update(item)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(updated, &released)
}

func (uc *WorkItemUseCase) ownedItem(companyID, id string) (*entity.WorkItem, error) {
	item, err := uc.workItemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func (uc *WorkItemUseCase) toResponse(item *entity.WorkItem, releasedHint *decimal.Decimal) (*dto.WorkItemResponse, error) {
	var released decimal.Decimal
	if releasedHint != nil {
		released = *releasedHint
	} else {
		releases, err := uc.releaseRepo.ListByWorkItem(item.ID)
		if err != nil {
			return nil, err
		}
		released = ReleasedSum(releases)
	}
	return &dto.WorkItemResponse{
		ID:               item.ID,
		Code:             item.Code,
		Description:      item.Description,
		OrderedQuantity:  item.OrderedQuantity,
		Unit:             item.Unit,
		ReleasedQuantity: released,
		Remaining:        item.OrderedQuantity.Sub(released),
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}, nil
}
