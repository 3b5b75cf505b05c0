package entity

import "time"

// InspectionTemplate define la secuencia ordenada de estaciones con la que se
// instancian los pasos de una inspección nueva. Colaborador externo de solo
// lectura para el núcleo: aquí solo se consulta.
type InspectionTemplate struct {
	ID        string
	CompanyID string
	Code      string // único por empresa
	Name      string
	StepNames []string // orden de las estaciones
	CreatedAt time.Time
	UpdatedAt time.Time
}
