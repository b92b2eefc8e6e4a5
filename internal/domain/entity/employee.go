package entity

import "time"

// Roles de los empleados. El rol viaja en el JWT y se valida en el
// middleware HTTP; los casos de uso no hacen chequeos de rol.
const (
	RoleAdmin      = "ADMIN"
	RoleVentas     = "VENTAS"
	RoleCompras    = "COMPRAS"
	RoleProduccion = "PRODUCCION"
)

// Employee representa un empleado. Document (cédula) y Email son únicos;
// Email es la credencial de acceso y PasswordHash el hash bcrypt.
type Employee struct {
	ID           string
	Document     string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Position     string // cargo: operario, supervisor de planta, etc.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVentas, RoleCompras, RoleProduccion:
		return true
	}
	return false
}
