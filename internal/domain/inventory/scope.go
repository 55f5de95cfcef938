package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// BranchScope es el límite de partición de los movimientos. El valor cero abarca todas las sucursales
// (vista de oficina central). Se pasa explícitamente a cada reconstrucción y agregación.
type BranchScope struct {
	location string
}

// AllBranches devuelve el alcance de oficina central.
func AllBranches() BranchScope { return BranchScope{} }

// ForBranch limita el alcance a una sucursal. Una ubicación vacía equivale a AllBranches.
func ForBranch(location string) BranchScope {
	return BranchScope{location: strings.TrimSpace(location)}
}

// IsAll indica si el alcance abarca todas las sucursales.
func (s BranchScope) IsAll() bool { return s.location == "" }

// Location devuelve la sucursal del alcance ("" para todas).
func (s BranchScope) Location() string { return s.location }

// Includes indica si un movimiento de la sucursal location pertenece al alcance.
func (s BranchScope) Includes(location string) bool {
	return s.location == "" || s.location == strings.TrimSpace(location)
}

func (s BranchScope) String() string {
	if s.IsAll() {
		return "all"
	}
	return s.location
}

// CacheKey clave estable del alcance para cachés: "all" para todas, "branch:<sucursal>" para una.
// Una sucursal llamada "all" no colisiona con la vista de oficina central.
func (s BranchScope) CacheKey() string {
	if s.IsAll() {
		return "all"
	}
	return "branch:" + s.location
}

// Filter devuelve una copia con los movimientos del alcance, en el mismo orden.
func (s BranchScope) Filter(records []entity.MovementRecord) []entity.MovementRecord {
	out := make([]entity.MovementRecord, 0, len(records))
	for _, r := range records {
		if s.Includes(r.BranchLocation) {
			out = append(out, r)
		}
	}
	return out
}

// ScopeFor resuelve el alcance visible para actor a partir de la sucursal pedida.
// La oficina central puede pedir cualquier sucursal o ninguna (todas); el personal queda fijado a la suya.
func ScopeFor(actor entity.Actor, requested string) (BranchScope, error) {
	requested = strings.TrimSpace(requested)
	if actor.IsHeadOffice() {
		return ForBranch(requested), nil
	}
	own := strings.TrimSpace(actor.Branch)
	if own == "" {
		return BranchScope{}, fmt.Errorf("%w: el usuario no tiene sucursal asignada", domain.ErrForbidden)
	}
	if requested != "" && requested != own {
		return BranchScope{}, fmt.Errorf("%w: sucursal %q fuera del alcance del usuario", domain.ErrForbidden, requested)
	}
	return ForBranch(own), nil
}

// CanModify indica si actor puede editar o eliminar movimientos de branch.
func CanModify(actor entity.Actor, branch string) bool {
	if actor.IsHeadOffice() {
		return true
	}
	own := strings.TrimSpace(actor.Branch)
	return own != "" && own == strings.TrimSpace(branch)
}
