package dto

import "time"

// EditLogEntryDTO entrada del log de ediciones.
type EditLogEntryDTO struct {
	ID               string    `json:"id"`
	MovementRecordID string    `json:"movement_record_id"`
	ItemName         string    `json:"item_name"`
	OldDirection     string    `json:"old_direction"`
	NewDirection     string    `json:"new_direction"`
	OldQuantity      int64     `json:"old_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	EditedBy         string    `json:"edited_by"`
	Branch           string    `json:"branch"`
	EditedAt         time.Time `json:"edited_at"`
}

// DeletionLogEntryDTO entrada del log de eliminaciones.
type DeletionLogEntryDTO struct {
	ID                       string    `json:"id"`
	OriginalMovementRecordID string    `json:"original_movement_record_id"`
	ItemName                 string    `json:"item_name"`
	Direction                string    `json:"direction"`
	Quantity                 int64     `json:"quantity"`
	OriginalTimestamp        time.Time `json:"original_timestamp"`
	Branch                   string    `json:"branch"`
	ActorName                string    `json:"actor_name"`
	DeletedBy                string    `json:"deleted_by"`
	DeletedAt                time.Time `json:"deleted_at"`
}

// EditLogDTO respuesta de GET /api/audit/edits.
type EditLogDTO struct {
	Branch  string            `json:"branch"`
	Entries []EditLogEntryDTO `json:"entries"`
}

// DeletionLogDTO respuesta de GET /api/audit/deletions.
type DeletionLogDTO struct {
	Branch  string                `json:"branch"`
	Entries []DeletionLogEntryDTO `json:"entries"`
}
