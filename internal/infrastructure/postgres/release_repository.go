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

var _ repository.ReleaseRepository = (*ReleaseRepo)(nil)

// ReleaseRepo implementación de ReleaseRepository sobre PostgreSQL (usable con pool o tx).
type ReleaseRepo struct {
	q Querier
}

// NewReleaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReleaseRepository(q Querier) *ReleaseRepo {
	return &ReleaseRepo{q: q}
}

const releaseCols = `id, company_id, work_item_id, release_quantity, drawing_batch, transmittal_ref, status, created_by, created_at, updated_at, deleted_at`

// Create persiste una liberación.
func (r *ReleaseRepo) Create(release *entity.ReleaseRecord) error {
	if release.ID == "" {
		release.ID = uuid.New().String()
	}
	query := `
		INSERT INTO release_records (id, company_id, work_item_id, release_quantity, drawing_batch, transmittal_ref, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		release.ID, release.CompanyID, release.WorkItemID, release.ReleaseQuantity,
		release.DrawingBatch, nullIfEmpty(release.TransmittalRef), release.Status,
		nullIfEmpty(release.CreatedBy), release.CreatedAt, release.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert release: %w", err)
	}
	return nil
}

// GetByID obtiene una liberación por ID (nil si no existe o está borrada).
func (r *ReleaseRepo) GetByID(id string) (*entity.ReleaseRecord, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la liberación y bloquea la fila (SELECT FOR UPDATE).
func (r *ReleaseRepo) GetForUpdate(id string) (*entity.ReleaseRecord, error) {
	return r.get(id, true)
}

func (r *ReleaseRepo) get(id string, forUpdate bool) (*entity.ReleaseRecord, error) {
	query := `SELECT ` + releaseCols + ` FROM release_records WHERE id = $1 AND deleted_at IS NULL`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rel, err := scanRelease(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get release: %w", err)
	}
	return rel, nil
}

// ListByWorkItem devuelve las liberaciones no borradas del renglón en orden
// CreatedAt descendente (orden del saldo corrido).
func (r *ReleaseRepo) ListByWorkItem(workItemID string) ([]*entity.ReleaseRecord, error) {
	query := `
		SELECT ` + releaseCols + `
		FROM release_records
		WHERE work_item_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, workItemID)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	defer rows.Close()

	var releases []*entity.ReleaseRecord
	for rows.Next() {
		rel, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		releases = append(releases, rel)
	}
	return releases, rows.Err()
}

// Update actualiza cantidad, lote de planos y transmittal.
func (r *ReleaseRepo) Update(release *entity.ReleaseRecord) error {
	query := `
		UPDATE release_records
		SET release_quantity = $2, drawing_batch = $3, transmittal_ref = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		release.ID, release.ReleaseQuantity, release.DrawingBatch,
		nullIfEmpty(release.TransmittalRef), release.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update release: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado del ciclo de vida.
func (r *ReleaseRepo) UpdateStatus(id, status string) error {
	query := `UPDATE release_records SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update release status: %w", err)
	}
	return nil
}

// SoftDelete marca la liberación como borrada; queda fuera de todas las sumas.
func (r *ReleaseRepo) SoftDelete(id string) error {
	query := `UPDATE release_records SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete release: %w", err)
	}
	return nil
}

func scanRelease(row pgx.Row) (*entity.ReleaseRecord, error) {
	var rel entity.ReleaseRecord
	var transmittal, createdBy *string
	if err := row.Scan(
		&rel.ID, &rel.CompanyID, &rel.WorkItemID, &rel.ReleaseQuantity,
		&rel.DrawingBatch, &transmittal, &rel.Status, &createdBy,
		&rel.CreatedAt, &rel.UpdatedAt, &rel.DeletedAt,
	); err != nil {
		return nil, err
	}
	rel.TransmittalRef = derefStr(transmittal)
	rel.CreatedBy = derefStr(createdBy)
	return &rel, nil
}
