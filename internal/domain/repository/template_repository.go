package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// TemplateRepository puerto de solo lectura hacia el colaborador de plantillas
// de inspección (secuencia ordenada de estaciones).
type TemplateRepository interface {
	GetByCode(companyID, code string) (*entity.InspectionTemplate, error)
	List(companyID string) ([]*entity.InspectionTemplate, error)
}
