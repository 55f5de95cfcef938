// Package analytics contiene los casos de uso de reportes: resumen del día y del mes en curso,
// totales diarios y el panorama por sucursal de la oficina central.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-register/internal/application/dto"
	appinv "github.com/jhoicas/stock-register/internal/application/inventory"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

const dashboardRecentMovements = 5 // movimientos en el widget de actividad reciente

// DashboardUseCase genera los reportes de hoy y del mes a la fecha en el calendario del visor.
type DashboardUseCase struct {
	loader   *appinv.Loader
	branches repository.EmployeeRepository
	loc      *time.Location
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(loader *appinv.Loader, branches repository.EmployeeRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{loader: loader, branches: branches, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el ReportSummaryDTO del alcance.
//
// Dos lecturas en paralelo:
//  1. catálogo + movimientos del alcance → snapshot, hoy, mes a la fecha
//  2. sucursales → código BOE de la sucursal del alcance
func (uc *DashboardUseCase) GetSummary(ctx context.Context, scope domaininv.BranchScope) (*dto.ReportSummaryDTO, error) {
	now := uc.now()

	type dataResult struct {
		catalog []entity.CatalogItem
		records []entity.MovementRecord
		err     error
	}
	type branchesResult struct {
		branches []entity.Branch
		err      error
	}

	dataCh := make(chan dataResult, 1)
	branchesCh := make(chan branchesResult, 1)

	go func() {
		catalog, records, err := uc.loader.Load(ctx, scope)
		dataCh <- dataResult{catalog, records, err}
	}()
	go func() {
		if scope.IsAll() {
			branchesCh <- branchesResult{}
			return
		}
		branches, err := uc.branches.ListBranches(ctx)
		branchesCh <- branchesResult{branches, err}
	}()

	data := <-dataCh
	br := <-branchesCh

	if data.err != nil {
		return nil, fmt.Errorf("reporte: %w", data.err)
	}
	if br.err != nil {
		return nil, fmt.Errorf("reporte: sucursales: %w", br.err)
	}

	agg := domaininv.NewAggregator(data.catalog, data.records, scope, uc.loc)

	// ── Periodos ───────────────────────────────────────────────────────────────
	today := domaininv.DayOf(now, uc.loc)
	mtd := domaininv.MonthToDate(now, uc.loc)
	todayRecords := agg.MovementsOnDay(now)
	mtdRecords := agg.MovementsInPeriod(mtd)
	mtdSummary := domaininv.Summarize(mtdRecords)

	closing := agg.TotalQuantity()
	alerts := agg.AlertCount()

	return &dto.ReportSummaryDTO{
		Branch:  scope.String(),
		BOECode: boeFor(br.branches, scope.Location()),
		Today: dto.PeriodReportDTO{
			Label:    todayLabel(now.In(uc.loc)),
			Start:    today.Start,
			End:      today.End,
			Summary:  dto.FromSummary(domaininv.Summarize(todayRecords)),
			Activity: dto.FromMovements(todayRecords),
		},
		MonthToDate: dto.PeriodReportDTO{
			Label:         mtdLabel(now.In(uc.loc)),
			Start:         mtd.Start,
			End:           mtd.End,
			Summary:       dto.FromSummary(mtdSummary),
			ClosingStock:  closing,
			LowStockItems: alerts,
			Activity:      dto.FromMovements(mtdRecords),
		},
		ClosingStock:    closing,
		LowStockCount:   alerts,
		StockIn:         mtdSummary.InQty,
		StockOut:        mtdSummary.OutQty,
		Valuation:       dto.FromValuation(agg.StockValue()),
		RecentMovements: dto.FromMovements(agg.RecentMovements(dashboardRecentMovements)),
		DateLabel:       monthLabel(now.In(uc.loc)),
	}, nil
}

// DailyReport totales por día y por mes del periodo (YYYY-MM-DD, por defecto el mes a la fecha).
func (uc *DashboardUseCase) DailyReport(ctx context.Context, scope domaininv.BranchScope, start, end string) (*dto.DailyReportDTO, error) {
	period, err := domaininv.ParsePeriod(start, end, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	catalog, records, err := uc.loader.Load(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: %w", err)
	}
	inRange := domaininv.NewAggregator(catalog, records, scope, uc.loc).MovementsInPeriod(period)

	days := make([]dto.DailyTotalDTO, 0)
	for _, d := range domaininv.DailyRollup(inRange, uc.loc) {
		days = append(days, dto.DailyTotalDTO{Date: d.Date, InQty: d.InQty, OutQty: d.OutQty, Net: d.InQty - d.OutQty})
	}
	months := make([]dto.MonthlyTotalDTO, 0)
	for _, m := range domaininv.MonthlyRollup(inRange, uc.loc) {
		months = append(months, dto.MonthlyTotalDTO{Month: m.Month, InQty: m.InQty, OutQty: m.OutQty, Net: m.InQty - m.OutQty})
	}
	return &dto.DailyReportDTO{Branch: scope.String(), Start: period.Start, End: period.End, Days: days, Months: months}, nil
}

func boeFor(branches []entity.Branch, location string) string {
	for _, b := range branches {
		if strings.TrimSpace(b.Location) == location {
			return b.BOECode
		}
	}
	return ""
}

// todayLabel etiqueta del día, ej: "Tue, 10 Mar 2026".
func todayLabel(t time.Time) string {
	return t.Format("Mon, 2 Jan 2006")
}

// mtdLabel etiqueta del mes a la fecha, ej: "1 Mar – 10 Mar 2026".
func mtdLabel(t time.Time) string {
	return fmt.Sprintf("1 %s – %d %s %d", t.Format("Jan"), t.Day(), t.Format("Jan"), t.Year())
}

// monthLabel etiqueta del mes, ej: "March 2026".
func monthLabel(t time.Time) string {
	return t.Format("January 2006")
}
