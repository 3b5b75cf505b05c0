package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación de solo lectura del puerto TemplateRepository.
// Las estaciones se guardan como text[] en orden de plantilla.
type TemplateRepo struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository construye el adaptador de plantillas de inspección.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{pool: pool}
}

// GetByCode obtiene la plantilla por código dentro de la empresa.
func (r *TemplateRepo) GetByCode(companyID, code string) (*entity.InspectionTemplate, error) {
	query := `
		SELECT id, company_id, code, name, step_names, created_at, updated_at
		FROM inspection_templates WHERE company_id = $1 AND code = $2`
	var t entity.InspectionTemplate
	err := r.pool.QueryRow(context.Background(), query, companyID, code).Scan(
		&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.StepNames, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return &t, nil
}

// List devuelve las plantillas de la empresa ordenadas por código.
func (r *TemplateRepo) List(companyID string) ([]*entity.InspectionTemplate, error) {
	query := `
		SELECT id, company_id, code, name, step_names, created_at, updated_at
		FROM inspection_templates WHERE company_id = $1 ORDER BY code ASC`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var list []*entity.InspectionTemplate
	for rows.Next() {
		var t entity.InspectionTemplate
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.StepNames, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
