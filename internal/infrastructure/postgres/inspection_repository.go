package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.InspectionRepository = (*InspectionRepo)(nil)

// InspectionRepo implementación de InspectionRepository sobre PostgreSQL
// (usable con pool o tx). Los cuatro totales de cabecera se guardan como par
// (valor, overridden) para conservar el estado Derived | Overridden.
type InspectionRepo struct {
	q Querier
}

// NewInspectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInspectionRepository(q Querier) *InspectionRepo {
	return &InspectionRepo{q: q}
}

const inspectionCols = `id, company_id, release_id, template_code,
	inspected_qty, inspected_override, approved_qty, approved_override,
	rejected_qty, rejected_override, hold_qty, hold_override,
	drawing_batch, transmittal_ref, status, inspected_by,
	closed_at, created_at, updated_at, deleted_at`

// Create persiste la cabecera y sus pasos en orden de plantilla (misma tx).
func (r *InspectionRepo) Create(insp *entity.InspectionRecord, steps []*entity.StepResult) error {
	if insp.ID == "" {
		insp.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inspection_records (id, company_id, release_id, template_code,
			inspected_qty, inspected_override, approved_qty, approved_override,
			rejected_qty, rejected_override, hold_qty, hold_override,
			drawing_batch, transmittal_ref, status, inspected_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		insp.ID, insp.CompanyID, insp.ReleaseID, insp.TemplateCode,
		insp.Inspected.Value, insp.Inspected.Overridden,
		insp.Approved.Value, insp.Approved.Overridden,
		insp.Rejected.Value, insp.Rejected.Overridden,
		insp.Hold.Value, insp.Hold.Overridden,
		insp.DrawingBatch, nullIfEmpty(insp.TransmittalRef), insp.Status,
		nullIfEmpty(insp.InspectedBy), insp.CreatedAt, insp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inspection: %w", err)
	}
	for _, s := range steps {
		if err := r.insertStep(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *InspectionRepo) insertStep(s *entity.StepResult) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO step_results (id, inspection_id, seq, name, approved_qty, rejected_qty, hold_qty, remarks, status, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.InspectionID, s.Seq, s.Name, s.ApprovedQty, s.RejectedQty, s.HoldQty,
		s.Remarks, s.Status, nullIfEmpty(s.UpdatedBy), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert step result: %w", err)
	}
	return nil
}

// GetByID obtiene una inspección por ID (nil si no existe o está borrada).
func (r *InspectionRepo) GetByID(id string) (*entity.InspectionRecord, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la inspección y bloquea la fila (SELECT FOR UPDATE):
// el guardado de pasos por inspección queda serializado.
func (r *InspectionRepo) GetForUpdate(id string) (*entity.InspectionRecord, error) {
	return r.get(id, true)
}

func (r *InspectionRepo) get(id string, forUpdate bool) (*entity.InspectionRecord, error) {
	query := `SELECT ` + inspectionCols + ` FROM inspection_records WHERE id = $1 AND deleted_at IS NULL`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	insp, err := scanInspection(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inspection: %w", err)
	}
	return insp, nil
}

// GetOpenByRelease devuelve la inspección abierta de la liberación (a lo sumo una).
func (r *InspectionRepo) GetOpenByRelease(releaseID string) (*entity.InspectionRecord, error) {
	query := `
		SELECT ` + inspectionCols + `
		FROM inspection_records
		WHERE release_id = $1 AND closed_at IS NULL AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`
	insp, err := scanInspection(r.q.QueryRow(context.Background(), query, releaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open inspection: %w", err)
	}
	return insp, nil
}

// ListByRelease devuelve todas las pasadas de inspección de la liberación en
// orden cronológico (la más antigua primero).
func (r *InspectionRepo) ListByRelease(releaseID string) ([]*entity.InspectionRecord, error) {
	query := `
		SELECT ` + inspectionCols + `
		FROM inspection_records
		WHERE release_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	defer rows.Close()

	var list []*entity.InspectionRecord
	for rows.Next() {
		insp, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		list = append(list, insp)
	}
	return list, rows.Err()
}

// UpdateHeader persiste totales (con sus flags de sobrescritura), lote de
// planos, transmittal y estado.
func (r *InspectionRepo) UpdateHeader(insp *entity.InspectionRecord) error {
	query := `
		UPDATE inspection_records
		SET inspected_qty = $2, inspected_override = $3,
		    approved_qty = $4, approved_override = $5,
		    rejected_qty = $6, rejected_override = $7,
		    hold_qty = $8, hold_override = $9,
		    drawing_batch = $10, transmittal_ref = $11, status = $12, updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		insp.ID,
		insp.Inspected.Value, insp.Inspected.Overridden,
		insp.Approved.Value, insp.Approved.Overridden,
		insp.Rejected.Value, insp.Rejected.Overridden,
		insp.Hold.Value, insp.Hold.Overridden,
		insp.DrawingBatch, nullIfEmpty(insp.TransmittalRef), insp.Status, insp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inspection header: %w", err)
	}
	return nil
}

// UpdateStatus persiste solo el estado agregado.
func (r *InspectionRepo) UpdateStatus(id, status string) error {
	query := `UPDATE inspection_records SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update inspection status: %w", err)
	}
	return nil
}

// Close marca la pasada como terminal.
func (r *InspectionRepo) Close(id string, at time.Time) error {
	query := `UPDATE inspection_records SET closed_at = $2, updated_at = $2 WHERE id = $1 AND closed_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("close inspection: %w", err)
	}
	return nil
}

// SoftDelete marca la inspección como borrada.
func (r *InspectionRepo) SoftDelete(id string) error {
	query := `UPDATE inspection_records SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete inspection: %w", err)
	}
	return nil
}

// ListSteps devuelve los pasos de la inspección en orden de plantilla.
func (r *InspectionRepo) ListSteps(inspectionID string) ([]*entity.StepResult, error) {
	query := `
		SELECT id, inspection_id, seq, name, approved_qty, rejected_qty, hold_qty, remarks, status, updated_by, created_at, updated_at
		FROM step_results
		WHERE inspection_id = $1
		ORDER BY seq ASC`
	rows, err := r.q.Query(context.Background(), query, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []*entity.StepResult
	for rows.Next() {
		var s entity.StepResult
		var updatedBy *string
		if err := rows.Scan(
			&s.ID, &s.InspectionID, &s.Seq, &s.Name, &s.ApprovedQty, &s.RejectedQty,
			&s.HoldQty, &s.Remarks, &s.Status, &updatedBy, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		s.UpdatedBy = derefStr(updatedBy)
		steps = append(steps, &s)
	}
	return steps, rows.Err()
}

// UpdateStep persiste el veredicto de un paso.
func (r *InspectionRepo) UpdateStep(step *entity.StepResult) error {
	query := `
		UPDATE step_results
		SET approved_qty = $2, rejected_qty = $3, hold_qty = $4, remarks = $5, status = $6, updated_by = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		step.ID, step.ApprovedQty, step.RejectedQty, step.HoldQty,
		step.Remarks, step.Status, nullIfEmpty(step.UpdatedBy), step.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update step: %w", err)
	}
	return nil
}

// ReleaseHasTouchedSteps indica si alguna inspección no borrada de la
// liberación tiene algún paso con veredicto (no-PENDING).
func (r *InspectionRepo) ReleaseHasTouchedSteps(releaseID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM step_results s
			JOIN inspection_records i ON i.id = s.inspection_id
			WHERE i.release_id = $1 AND i.deleted_at IS NULL AND s.status <> $2
		)`
	var touched bool
	err := r.q.QueryRow(context.Background(), query, releaseID, entity.StepStatusPending).Scan(&touched)
	if err != nil {
		return false, fmt.Errorf("release touched steps: %w", err)
	}
	return touched, nil
}

func scanInspection(row pgx.Row) (*entity.InspectionRecord, error) {
	var insp entity.InspectionRecord
	var transmittal, inspectedBy *string
	if err := row.Scan(
		&insp.ID, &insp.CompanyID, &insp.ReleaseID, &insp.TemplateCode,
		&insp.Inspected.Value, &insp.Inspected.Overridden,
		&insp.Approved.Value, &insp.Approved.Overridden,
		&insp.Rejected.Value, &insp.Rejected.Overridden,
		&insp.Hold.Value, &insp.Hold.Overridden,
		&insp.DrawingBatch, &transmittal, &insp.Status, &inspectedBy,
		&insp.ClosedAt, &insp.CreatedAt, &insp.UpdatedAt, &insp.DeletedAt,
	); err != nil {
		return nil, err
	}
	insp.TransmittalRef = derefStr(transmittal)
	insp.InspectedBy = derefStr(inspectedBy)
	return &insp, nil
}
