package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"      // privilegiado: sobrescrituras de cabecera, corrección de pedidos, rechazo
	RoleProduccion = "produccion" // crea y edita liberaciones
	RoleInspector  = "inspector"  // registra veredictos de pasos
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, produccion, inspector
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
