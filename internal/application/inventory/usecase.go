package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-register/internal/application/dto"
	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/internal/domain/repository"
	"github.com/jhoicas/stock-register/pkg/validator"
)

// Tipos de evento publicados al Notifier.
const (
	EventMovementCreated = "movement.created"
	EventMovementEdited  = "movement.edited"
	EventMovementDeleted = "movement.deleted"
)

// MovementUseCase registra movimientos y consulta el log por rango de fechas.
// Un registro fallido no modifica ningún estado local.
type MovementUseCase struct {
	movements repository.MovementRepository
	notifier  Notifier
	loc       *time.Location
	now       func() time.Time
}

// NewMovementUseCase construye el caso de uso. loc es el calendario de las fechas de entrada y de los rangos.
func NewMovementUseCase(movements repository.MovementRepository, notifier Notifier, loc *time.Location) *MovementUseCase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &MovementUseCase{movements: movements, notifier: notifier, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *MovementUseCase) WithClock(now func() time.Time) *MovementUseCase {
	uc.now = now
	return uc
}

// Register valida el request y agrega un movimiento al log.
// Cantidad no positiva, dirección desconocida o fecha mal formada devuelven ErrInvalidInput.
func (uc *MovementUseCase) Register(ctx context.Context, actor entity.Actor, in dto.RegisterMovementRequest) (*dto.MovementDTO, error) {
	if errs := validator.ValidateStruct(in); errs != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Describe(errs))
	}
	branch, err := targetBranch(actor, in.Branch)
	if err != nil {
		return nil, err
	}
	ts, err := EntryTimestamp(in.EntryDate, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}

	rec := movementFromRequest(actor, in, branch, ts)
	if err := uc.movements.InsertMovement(ctx, rec); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}

	out := dto.FromMovement(*rec)
	uc.notifier.Publish(dto.StockEventDTO{Type: EventMovementCreated, Branch: branch, Movement: out, At: uc.now().UTC()})
	return &out, nil
}

// List devuelve los movimientos del alcance entre start y end (YYYY-MM-DD, inclusive) en orden cronológico.
// Sin fechas devuelve el mes en curso hasta hoy.
func (uc *MovementUseCase) List(ctx context.Context, scope domaininv.BranchScope, start, end string) (*dto.MovementListDTO, error) {
	period, err := domaininv.ParsePeriod(start, end, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	records, err := uc.movements.FetchMovements(ctx, scope.Location())
	if err != nil {
		return nil, fmt.Errorf("leer movimientos: %w", err)
	}

	agg := domaininv.NewAggregator(nil, records, scope, uc.loc)
	inRange := agg.MovementsInPeriod(period)
	return &dto.MovementListDTO{
		Branch:    scope.String(),
		Start:     period.Start,
		End:       period.End,
		Summary:   dto.FromSummary(domaininv.Summarize(inRange)),
		Movements: dto.FromMovements(inRange),
	}, nil
}
