package entity

import "time"

// Direction sentido de un movimiento de stock.
type Direction string

// Sentidos de movimiento.
const (
	DirectionIn  Direction = "in"  // entrada
	DirectionOut Direction = "out" // salida
)

// MaxQuantity tope de unidades por movimiento; mantiene los acumulados dentro de int64.
const MaxQuantity int64 = 1_000_000_000

// Valid indica si d es un sentido conocido.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// MovementRecord representa una entrada o salida de stock registrada por una sucursal.
// Solo se modifica mediante una edición explícita (Direction, Quantity) o se elimina.
type MovementRecord struct {
	ID             string
	ItemName       string
	BranchLocation string
	Direction      Direction
	Quantity       int64     // siempre > 0
	Timestamp      time.Time // UTC
	ActorName      string
	IsEdited       bool
	EditedAt       *time.Time
}

// SignedDelta devuelve +Quantity para entradas y -Quantity para salidas.
func (m MovementRecord) SignedDelta() int64 {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}

// MovementPatch campos editables de un movimiento.
type MovementPatch struct {
	Direction Direction
	Quantity  int64
	EditedAt  time.Time
}
