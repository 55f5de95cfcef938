package repository

import (
	"context"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del log de movimientos.
// branch vacío significa todas las sucursales.
type MovementRepository interface {
	// FetchMovements devuelve el log completo (o el de una sucursal) ordenado por timestamp ascendente.
	// No hay resultados parciales: o devuelve todo o falla.
	FetchMovements(ctx context.Context, branch string) ([]entity.MovementRecord, error)
	// GetMovement devuelve ErrNotFound si id no existe.
	GetMovement(ctx context.Context, id string) (*entity.MovementRecord, error)
	InsertMovement(ctx context.Context, record *entity.MovementRecord) error
	// UpdateMovement sobrescribe dirección y cantidad y marca el registro como editado.
	UpdateMovement(ctx context.Context, id string, patch entity.MovementPatch) error
	DeleteMovement(ctx context.Context, id string) error
}
