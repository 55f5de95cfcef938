package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-register/internal/application/dto"
	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
)

// EntryTimestamp combina la fecha elegida (YYYY-MM-DD, calendario de loc) con la hora actual del reloj
// y la convierte a UTC. Sin fecha se usa el instante actual.
func EntryTimestamp(entryDate string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if strings.TrimSpace(entryDate) == "" {
		return now.UTC(), nil
	}
	day, err := time.ParseInLocation(domaininv.DateLayout, entryDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: entry_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	local := now.In(loc)
	ts := time.Date(day.Year(), day.Month(), day.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc)
	return ts.UTC(), nil
}

// targetBranch sucursal donde se registra el movimiento. El personal siempre registra en la suya;
// la oficina central indica la sucursal en el request (o usa la propia si la tiene).
func targetBranch(actor entity.Actor, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if actor.IsHeadOffice() {
		if requested != "" {
			return requested, nil
		}
		if own := strings.TrimSpace(actor.Branch); own != "" {
			return own, nil
		}
		return "", fmt.Errorf("%w: branch es obligatorio para la oficina central", domain.ErrInvalidInput)
	}
	scope, err := domaininv.ScopeFor(actor, requested)
	if err != nil {
		return "", err
	}
	return scope.Location(), nil
}

// movementFromRequest construye el registro a persistir a partir de un request ya validado.
func movementFromRequest(actor entity.Actor, in dto.RegisterMovementRequest, branch string, ts time.Time) *entity.MovementRecord {
	return &entity.MovementRecord{
		ID:             uuid.NewString(),
		ItemName:       domaininv.NormalizeName(in.ItemName),
		BranchLocation: branch,
		Direction:      entity.Direction(in.Direction),
		Quantity:       in.Quantity,
		Timestamp:      ts,
		ActorName:      actor.DisplayName(),
	}
}
