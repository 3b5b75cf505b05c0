package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.WorkItemRepository = (*WorkItemRepo)(nil)

// WorkItemRepo implementación de WorkItemRepository sobre PostgreSQL (usable con pool o tx).
type WorkItemRepo struct {
	q Querier
}

// NewWorkItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkItemRepository(q Querier) *WorkItemRepo {
	return &WorkItemRepo{q: q}
}

const workItemCols = `id, company_id, code, description, ordered_quantity, unit, created_by, created_at, updated_at, deleted_at`

// Create persiste un renglón de trabajo.
func (r *WorkItemRepo) Create(item *entity.WorkItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO work_items (id, company_id, code, description, ordered_quantity, unit, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.Code, item.Description,
		item.OrderedQuantity, item.Unit, nullIfEmpty(item.CreatedBy),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("work item code ya existe: %w", err)
		}
		return fmt.Errorf("insert work item: %w", err)
	}
	return nil
}

// GetByID obtiene un renglón por ID (nil si no existe).
func (r *WorkItemRepo) GetByID(id string) (*entity.WorkItem, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el renglón y bloquea la fila (SELECT FOR UPDATE) para
// serializar la validación del libro frente a liberaciones concurrentes.
func (r *WorkItemRepo) GetForUpdate(id string) (*entity.WorkItem, error) {
	return r.get(id, true)
}

func (r *WorkItemRepo) get(id string, forUpdate bool) (*entity.WorkItem, error) {
	query := `SELECT ` + workItemCols + ` FROM work_items WHERE id = $1 AND deleted_at IS NULL`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var w entity.WorkItem
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.CompanyID, &w.Code, &w.Description, &w.OrderedQuantity,
		&w.Unit, &createdBy, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work item: %w", err)
	}
	w.CreatedBy = derefStr(createdBy)
	return &w, nil
}

// Update actualiza descripción, cantidad pedida y unidad.
func (r *WorkItemRepo) Update(item *entity.WorkItem) error {
	query := `
		UPDATE work_items
		SET description = $2, ordered_quantity = $3, unit = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Description, item.OrderedQuantity, item.Unit, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work item: %w", err)
	}
	return nil
}

// ListByCompany lista renglones no borrados de la empresa.
func (r *WorkItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.WorkItem, error) {
	query := `
		SELECT ` + workItemCols + `
		FROM work_items
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	defer rows.Close()

	var items []*entity.WorkItem
	for rows.Next() {
		var w entity.WorkItem
		var createdBy *string
		if err := rows.Scan(
			&w.ID, &w.CompanyID, &w.Code, &w.Description, &w.OrderedQuantity,
			&w.Unit, &createdBy, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan work item: %w", err)
		}
		w.CreatedBy = derefStr(createdBy)
		items = append(items, &w)
	}
	return items, rows.Err()
}

// SoftDelete marca el renglón como borrado.
func (r *WorkItemRepo) SoftDelete(id string) error {
	query := `UPDATE work_items SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete work item: %w", err)
	}
	return nil
}
