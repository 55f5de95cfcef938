package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/stock-register/internal/domain"
)

// DateLayout formato de fecha de los parámetros de consulta.
const DateLayout = "2006-01-02"

// Period intervalo cerrado [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains indica si t cae dentro del periodo (ambos extremos inclusive).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// DayOf devuelve el día calendario de t en loc: desde las 00:00 hasta el último instante del día.
func DayOf(t time.Time, loc *time.Location) Period {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return Period{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

// MonthOf devuelve el mes calendario completo de t en loc.
func MonthOf(t time.Time, loc *time.Location) Period {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
	return Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// MonthToDate desde el primer día del mes de now hasta el final del día de now.
func MonthToDate(now time.Time, loc *time.Location) Period {
	return Period{Start: MonthOf(now, loc).Start, End: DayOf(now, loc).End}
}

// SameLocalDate compara fechas calendario en loc.
func SameLocalDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// ParsePeriod interpreta start/end (YYYY-MM-DD) en loc. Sin fechas devuelve el mes actual hasta hoy.
// Con una sola fecha el periodo es ese día.
func ParsePeriod(startStr, endStr string, now time.Time, loc *time.Location) (Period, error) {
	if startStr == "" && endStr == "" {
		return MonthToDate(now, loc), nil
	}
	if startStr == "" {
		startStr = endStr
	}
	if endStr == "" {
		endStr = startStr
	}
	start, err := time.ParseInLocation(DateLayout, startStr, loc)
	if err != nil {
		return Period{}, fmt.Errorf("%w: start_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	end, err := time.ParseInLocation(DateLayout, endStr, loc)
	if err != nil {
		return Period{}, fmt.Errorf("%w: end_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end_date no puede ser anterior a start_date", domain.ErrInvalidInput)
	}
	return Period{Start: start, End: DayOf(end, loc).End}, nil
}
