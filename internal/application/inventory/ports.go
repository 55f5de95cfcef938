package inventory

import (
	"context"

	"github.com/jhoicas/stock-register/internal/application/dto"
)

// Notifier publica eventos de cambio del log de movimientos (ej: hub websocket).
type Notifier interface {
	Publish(event dto.StockEventDTO)
}

// SnapshotCache conserva el último snapshot reconstruido por alcance, para responder
// cuando el backend no está disponible.
type SnapshotCache interface {
	Get(ctx context.Context, scope string) (*dto.StockSnapshotDTO, bool, error)
	Set(ctx context.Context, scope string, snapshot *dto.StockSnapshotDTO) error
}

// NopNotifier descarta los eventos.
type NopNotifier struct{}

// Publish no hace nada.
func (NopNotifier) Publish(dto.StockEventDTO) {}
