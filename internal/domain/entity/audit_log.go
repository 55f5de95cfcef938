package entity

import "time"

// EditLogEntry registra una edición de un movimiento. Se crea una sola vez y nunca se modifica ni elimina.
type EditLogEntry struct {
	ID               string
	MovementRecordID string
	ItemName         string
	OldDirection     Direction
	NewDirection     Direction
	OldQuantity      int64
	NewQuantity      int64
	EditedBy         string
	Branch           string
	EditedAt         time.Time // UTC
}

// DeletionLogEntry registra la eliminación de un movimiento con su último estado conocido.
type DeletionLogEntry struct {
	ID                       string
	OriginalMovementRecordID string
	ItemName                 string
	Direction                Direction
	Quantity                 int64
	OriginalTimestamp        time.Time
	Branch                   string
	ActorName                string
	DeletedBy                string
	DeletedAt                time.Time // UTC
}
