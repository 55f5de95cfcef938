package entity

import "strings"

// Roles de acceso.
const (
	RoleStaff      = "staff"       // personal de sucursal
	RoleHeadOffice = "head_office" // oficina central
)

// Actor identidad de quien ejecuta una operación, tomada del token de acceso.
type Actor struct {
	UserID string
	Name   string
	Branch string
	Role   string
}

// IsHeadOffice indica si el actor tiene visibilidad sobre todas las sucursales.
func (a Actor) IsHeadOffice() bool { return a.Role == RoleHeadOffice }

// DisplayName nombre para registros de auditoría; si falta usa el identificador.
func (a Actor) DisplayName() string {
	if name := strings.TrimSpace(a.Name); name != "" {
		return name
	}
	return a.UserID
}
