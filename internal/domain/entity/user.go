package entity

import "time"

// Roles de usuario para RBAC.
const (
	RoleAdmin    = "admin"
	RoleAnalista = "analista"
)

// User usuario de la aplicación. Los analistas consultan la conciliación;
// solo los admin corrigen materiales.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
