package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo tablas append-only edit_logs y deletion_logs.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

type editLogRow struct {
	ID               string    `db:"id"`
	MovementRecordID string    `db:"stock_entry_id"`
	ItemName         string    `db:"item_name"`
	OldDirection     string    `db:"old_direction"`
	NewDirection     string    `db:"new_direction"`
	OldQuantity      int64     `db:"old_quantity"`
	NewQuantity      int64     `db:"new_quantity"`
	EditedBy         string    `db:"edited_by"`
	Branch           string    `db:"branch_location"`
	EditedAt         time.Time `db:"edited_at"`
}

type deletionLogRow struct {
	ID                       string    `db:"id"`
	OriginalMovementRecordID string    `db:"original_entry_id"`
	ItemName                 string    `db:"item_name"`
	Direction                string    `db:"direction"`
	Quantity                 int64     `db:"quantity"`
	OriginalTimestamp        time.Time `db:"original_timestamp"`
	Branch                   string    `db:"branch_location"`
	ActorName                string    `db:"actor_name"`
	DeletedBy                string    `db:"deleted_by"`
	DeletedAt                time.Time `db:"deleted_at"`
}

// InsertEditLogEntry agrega una entrada al log de ediciones.
func (r *AuditLogRepo) InsertEditLogEntry(ctx context.Context, e *entity.EditLogEntry) error {
	query, args, err := builder.Insert(editLogTable).
		Columns("id", "stock_entry_id", "item_name", "old_direction", "new_direction",
			"old_quantity", "new_quantity", "edited_by", "branch_location", "edited_at").
		Values(e.ID, e.MovementRecordID, e.ItemName, string(e.OldDirection), string(e.NewDirection),
			e.OldQuantity, e.NewQuantity, e.EditedBy, e.Branch, e.EditedAt.UTC()).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return wrapErr("insert edit log", err)
	}
	return nil
}

// InsertDeletionLogEntry agrega una entrada al log de eliminaciones.
func (r *AuditLogRepo) InsertDeletionLogEntry(ctx context.Context, e *entity.DeletionLogEntry) error {
	query, args, err := builder.Insert(deleteLogTable).
		Columns("id", "original_entry_id", "item_name", "direction", "quantity",
			"original_timestamp", "branch_location", "actor_name", "deleted_by", "deleted_at").
		Values(e.ID, e.OriginalMovementRecordID, e.ItemName, string(e.Direction), e.Quantity,
			e.OriginalTimestamp.UTC(), e.Branch, e.ActorName, e.DeletedBy, e.DeletedAt.UTC()).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return wrapErr("insert deletion log", err)
	}
	return nil
}

// FetchEditLog devuelve las ediciones de branch (o de todas si está vacío), más recientes primero.
func (r *AuditLogRepo) FetchEditLog(ctx context.Context, branch string) ([]entity.EditLogEntry, error) {
	sel := builder.Select("id", "stock_entry_id", "item_name", "old_direction", "new_direction",
		"old_quantity", "new_quantity", "edited_by", "branch_location", "edited_at").From(editLogTable)
	query, args, err := branchFilter(sel, "branch_location", branch).OrderBy("edited_at DESC").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []editLogRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, wrapErr("fetch edit log", err)
	}
	out := make([]entity.EditLogEntry, len(rows))
	for i, row := range rows {
		out[i] = entity.EditLogEntry{
			ID:               row.ID,
			MovementRecordID: row.MovementRecordID,
			ItemName:         row.ItemName,
			OldDirection:     entity.Direction(row.OldDirection),
			NewDirection:     entity.Direction(row.NewDirection),
			OldQuantity:      row.OldQuantity,
			NewQuantity:      row.NewQuantity,
			EditedBy:         row.EditedBy,
			Branch:           row.Branch,
			EditedAt:         row.EditedAt.UTC(),
		}
	}
	return out, nil
}

// FetchDeletionLog devuelve las eliminaciones de branch (o de todas si está vacío), más recientes primero.
func (r *AuditLogRepo) FetchDeletionLog(ctx context.Context, branch string) ([]entity.DeletionLogEntry, error) {
	sel := builder.Select("id", "original_entry_id", "item_name", "direction", "quantity",
		"original_timestamp", "branch_location", "actor_name", "deleted_by", "deleted_at").From(deleteLogTable)
	query, args, err := branchFilter(sel, "branch_location", branch).OrderBy("deleted_at DESC").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []deletionLogRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, wrapErr("fetch deletion log", err)
	}
	out := make([]entity.DeletionLogEntry, len(rows))
	for i, row := range rows {
		out[i] = entity.DeletionLogEntry{
			ID:                       row.ID,
			OriginalMovementRecordID: row.OriginalMovementRecordID,
			ItemName:                 row.ItemName,
			Direction:                entity.Direction(row.Direction),
			Quantity:                 row.Quantity,
			OriginalTimestamp:        row.OriginalTimestamp.UTC(),
			Branch:                   row.Branch,
			ActorName:                row.ActorName,
			DeletedBy:                row.DeletedBy,
			DeletedAt:                row.DeletedAt.UTC(),
		}
	}
	return out, nil
}
