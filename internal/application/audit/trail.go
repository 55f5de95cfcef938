// Package audit implementa el registro auditado de ediciones y eliminaciones de movimientos.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-register/internal/application/dto"
	appinv "github.com/jhoicas/stock-register/internal/application/inventory"
	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/internal/domain/repository"
	"github.com/jhoicas/stock-register/pkg/logger"
)

// Trail envuelve las ediciones y eliminaciones de movimientos con su entrada de auditoría.
//
// Edición: se escribe el log y luego se modifica el movimiento. Eliminación: se elimina y luego
// se escribe el log. La política de cada operación decide si un fallo del log la hace fallar.
// No hay reintentos ni compensación: un resultado parcial se informa tal cual.
type Trail struct {
	movements    repository.MovementRepository
	logs         repository.AuditLogRepository
	notifier     appinv.Notifier
	log          *logger.Logger
	editPolicy   domaininv.AuditPolicy
	deletePolicy domaininv.AuditPolicy
	now          func() time.Time
}

// NewTrail construye el trail con las políticas por defecto: edición FailClosed, eliminación FailOpen.
func NewTrail(
	movements repository.MovementRepository,
	logs repository.AuditLogRepository,
	notifier appinv.Notifier,
	log *logger.Logger,
) *Trail {
	if notifier == nil {
		notifier = appinv.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Trail{
		movements:    movements,
		logs:         logs,
		notifier:     notifier,
		log:          log,
		editPolicy:   domaininv.AuditFailClosed,
		deletePolicy: domaininv.AuditFailOpen,
		now:          time.Now,
	}
}

// WithPolicies reemplaza las políticas de edición y eliminación.
func (t *Trail) WithPolicies(edit, deletion domaininv.AuditPolicy) *Trail {
	t.editPolicy = edit
	t.deletePolicy = deletion
	return t
}

// WithClock reemplaza el reloj (tests).
func (t *Trail) WithClock(now func() time.Time) *Trail {
	t.now = now
	return t
}

// EditOutcome resultado de RecordEdit. Warning no es nil cuando el log falló bajo FailOpen.
type EditOutcome struct {
	Movement entity.MovementRecord
	Entry    entity.EditLogEntry
	Warning  error
}

// DeletionOutcome resultado de RecordDeletion. Warning no es nil cuando el log falló bajo FailOpen.
type DeletionOutcome struct {
	Deleted entity.MovementRecord
	Entry   *entity.DeletionLogEntry
	Warning error
}

// RecordEdit cambia dirección y cantidad de un movimiento dejando una entrada con los valores previos y nuevos.
func (t *Trail) RecordEdit(
	ctx context.Context,
	actor entity.Actor,
	id string,
	newDirection entity.Direction,
	newQuantity int64,
) (*EditOutcome, error) {
	if !newDirection.Valid() || newQuantity <= 0 || newQuantity > entity.MaxQuantity {
		return nil, fmt.Errorf("%w: dirección in/out y cantidad positiva son obligatorias", domain.ErrInvalidInput)
	}

	current, err := t.movements.GetMovement(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer movimiento: %w", err)
	}
	if !domaininv.CanModify(actor, current.BranchLocation) {
		return nil, fmt.Errorf("%w: el movimiento pertenece a otra sucursal", domain.ErrForbidden)
	}

	now := t.now().UTC()
	entry := entity.EditLogEntry{
		ID:               uuid.NewString(),
		MovementRecordID: current.ID,
		ItemName:         current.ItemName,
		OldDirection:     current.Direction,
		NewDirection:     newDirection,
		OldQuantity:      current.Quantity,
		NewQuantity:      newQuantity,
		EditedBy:         actor.DisplayName(),
		Branch:           current.BranchLocation,
		EditedAt:         now,
	}

	outcome := &EditOutcome{}
	if err := t.logs.InsertEditLogEntry(ctx, &entry); err != nil {
		if t.editPolicy == domaininv.AuditFailClosed {
			return nil, fmt.Errorf("registrar edición: %w", err)
		}
		outcome.Warning = auditWarning(err)
		t.log.Warn().Err(err).Str("movement_id", id).Msg("edición aplicada sin registro de auditoría")
	}
	outcome.Entry = entry

	patch := entity.MovementPatch{Direction: newDirection, Quantity: newQuantity, EditedAt: now}
	if err := t.movements.UpdateMovement(ctx, id, patch); err != nil {
		if outcome.Warning == nil {
			t.log.Error().Err(err).Str("movement_id", id).Str("edit_log_id", entry.ID).
				Msg("edición registrada en auditoría pero el movimiento no se actualizó")
		}
		return nil, fmt.Errorf("actualizar movimiento: %w", err)
	}

	updated := *current
	updated.Direction = newDirection
	updated.Quantity = newQuantity
	updated.IsEdited = true
	updated.EditedAt = &now
	outcome.Movement = updated

	t.notifier.Publish(dto.StockEventDTO{
		Type: appinv.EventMovementEdited, Branch: updated.BranchLocation, Movement: dto.FromMovement(updated), At: now,
	})
	return outcome, nil
}

// RecordDeletion elimina un movimiento y registra su último estado conocido.
// Un fallo de la eliminación se propaga; un fallo del log posterior depende de la política.
func (t *Trail) RecordDeletion(ctx context.Context, actor entity.Actor, id string) (*DeletionOutcome, error) {
	current, err := t.movements.GetMovement(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer movimiento: %w", err)
	}
	if !domaininv.CanModify(actor, current.BranchLocation) {
		return nil, fmt.Errorf("%w: el movimiento pertenece a otra sucursal", domain.ErrForbidden)
	}

	if err := t.movements.DeleteMovement(ctx, id); err != nil {
		return nil, fmt.Errorf("eliminar movimiento: %w", err)
	}

	now := t.now().UTC()
	entry := &entity.DeletionLogEntry{
		ID:                       uuid.NewString(),
		OriginalMovementRecordID: current.ID,
		ItemName:                 current.ItemName,
		Direction:                current.Direction,
		Quantity:                 current.Quantity,
		OriginalTimestamp:        current.Timestamp,
		Branch:                   current.BranchLocation,
		ActorName:                current.ActorName,
		DeletedBy:                actor.DisplayName(),
		DeletedAt:                now,
	}

	outcome := &DeletionOutcome{Deleted: *current}
	if err := t.logs.InsertDeletionLogEntry(ctx, entry); err != nil {
		t.log.Warn().Err(err).Str("movement_id", id).Str("policy", t.deletePolicy.String()).
			Msg("movimiento eliminado sin registro de auditoría")
		if t.deletePolicy == domaininv.AuditFailClosed {
			return nil, fmt.Errorf("registrar eliminación: %w", err)
		}
		outcome.Warning = auditWarning(err)
	} else {
		outcome.Entry = entry
	}

	t.notifier.Publish(dto.StockEventDTO{
		Type: appinv.EventMovementDeleted, Branch: current.BranchLocation, Movement: dto.FromMovement(*current), At: now,
	})
	return outcome, nil
}

// ListEdits log de ediciones del alcance, del más reciente al más antiguo.
func (t *Trail) ListEdits(ctx context.Context, scope domaininv.BranchScope) (*dto.EditLogDTO, error) {
	entries, err := t.logs.FetchEditLog(ctx, scope.Location())
	if err != nil {
		return nil, fmt.Errorf("leer log de ediciones: %w", err)
	}
	out := make([]dto.EditLogEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromEditLogEntry(e))
	}
	return &dto.EditLogDTO{Branch: scope.String(), Entries: out}, nil
}

// ListDeletions log de eliminaciones del alcance, del más reciente al más antiguo.
func (t *Trail) ListDeletions(ctx context.Context, scope domaininv.BranchScope) (*dto.DeletionLogDTO, error) {
	entries, err := t.logs.FetchDeletionLog(ctx, scope.Location())
	if err != nil {
		return nil, fmt.Errorf("leer log de eliminaciones: %w", err)
	}
	out := make([]dto.DeletionLogEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromDeletionLogEntry(e))
	}
	return &dto.DeletionLogDTO{Branch: scope.String(), Entries: out}, nil
}

// auditWarning envuelve la causa con ErrAuditLogNotWritten.
func auditWarning(cause error) error {
	return errors.Join(domain.ErrAuditLogNotWritten, cause)
}
