package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre la tabla stock_entries.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del log de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

var movementColumns = []string{
	"id", "item_name", "branch_location", "direction", "quantity",
	"entry_timestamp", "actor_name", "is_edited", "edited_at",
}

type movementRow struct {
	ID             string     `db:"id"`
	ItemName       string     `db:"item_name"`
	BranchLocation string     `db:"branch_location"`
	Direction      string     `db:"direction"`
	Quantity       int64      `db:"quantity"`
	EntryTimestamp time.Time  `db:"entry_timestamp"`
	ActorName      string     `db:"actor_name"`
	IsEdited       bool       `db:"is_edited"`
	EditedAt       *time.Time `db:"edited_at"`
}

func (row movementRow) toEntity() entity.MovementRecord {
	m := entity.MovementRecord{
		ID:             row.ID,
		ItemName:       row.ItemName,
		BranchLocation: row.BranchLocation,
		Direction:      entity.Direction(row.Direction),
		Quantity:       row.Quantity,
		Timestamp:      row.EntryTimestamp.UTC(),
		ActorName:      row.ActorName,
		IsEdited:       row.IsEdited,
	}
	if row.EditedAt != nil {
		t := row.EditedAt.UTC()
		m.EditedAt = &t
	}
	return m
}

// FetchMovements lee el log ordenado por timestamp; id desempata para que el orden sea estable.
func (r *MovementRepo) FetchMovements(ctx context.Context, branch string) ([]entity.MovementRecord, error) {
	sel := builder.Select(movementColumns...).From(movementsTable)
	query, args, err := branchFilter(sel, "branch_location", branch).
		OrderBy("entry_timestamp ASC", "created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, wrapErr("fetch movements", err)
	}
	out := make([]entity.MovementRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toEntity()
	}
	return out, nil
}

// GetMovement obtiene un movimiento por ID.
func (r *MovementRepo) GetMovement(ctx context.Context, id string) (*entity.MovementRecord, error) {
	query, args, err := builder.Select(movementColumns...).
		From(movementsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var row movementRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		return nil, wrapErr("get movement", err)
	}
	m := row.toEntity()
	return &m, nil
}

// InsertMovement persiste un nuevo movimiento. El ID lo asigna la capa de aplicación.
func (r *MovementRepo) InsertMovement(ctx context.Context, record *entity.MovementRecord) error {
	query, args, err := builder.Insert(movementsTable).
		Columns("id", "item_name", "branch_location", "direction", "quantity", "entry_timestamp", "actor_name").
		Values(record.ID, record.ItemName, record.BranchLocation, string(record.Direction),
			record.Quantity, record.Timestamp.UTC(), record.ActorName).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return wrapErr("insert movement", err)
	}
	return nil
}

// UpdateMovement sobrescribe dirección y cantidad y marca el registro como editado.
func (r *MovementRepo) UpdateMovement(ctx context.Context, id string, patch entity.MovementPatch) error {
	query, args, err := builder.Update(movementsTable).
		Set("direction", string(patch.Direction)).
		Set("quantity", patch.Quantity).
		Set("is_edited", true).
		Set("edited_at", patch.EditedAt.UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return wrapErr("update movement", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update movement %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteMovement elimina el registro; ErrNotFound si no existía.
func (r *MovementRepo) DeleteMovement(ctx context.Context, id string) error {
	query, args, err := builder.Delete(movementsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return wrapErr("delete movement", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("delete movement %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
