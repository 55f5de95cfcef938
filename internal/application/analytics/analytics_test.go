package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-register/internal/application/analytics"
	appinv "github.com/jhoicas/stock-register/internal/application/inventory"
	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/internal/infrastructure/memory"
)

const (
	branchA = "Central Warehouse - Bangalore"
	branchB = "North Depot - Mysore"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

// fixture: hoy es 10 de marzo (Kolkata).
func fixture(t *testing.T) (*memory.Store, func() time.Time) {
	t.Helper()
	loc := kolkata(t)
	s := memory.NewStore()
	s.SetCatalog([]entity.CatalogItem{
		{ID: "pen", Name: "Pen", ReorderThreshold: 10, UnitRate: decimal.NewFromInt(10), TaxRatePercent: decimal.Zero},
		{ID: "stapler", Name: "Stapler", ReorderThreshold: 2, UnitRate: decimal.NewFromInt(100), TaxRatePercent: decimal.Zero},
	})
	s.AddBranches(
		entity.Branch{ID: "b1", Location: branchA, BOECode: "BOE-KA-2024-0142"},
		entity.Branch{ID: "b2", Location: branchB, BOECode: "BOE-KA-2024-0200"},
		entity.Branch{ID: "b3", Location: "South Hub - Chennai"},
	)
	s.AddEmployees(
		entity.Employee{ID: "e1", Name: "Priya Sharma", BranchLocation: branchA},
		entity.Employee{ID: "e2", Name: "Ravi Kumar", BranchLocation: branchA},
		entity.Employee{ID: "e3", Name: "Amit Patel", BranchLocation: branchB},
	)
	add := func(branch, item string, dir entity.Direction, qty int64, local time.Time, actor string) {
		require.NoError(t, s.InsertMovement(context.Background(), &entity.MovementRecord{
			ItemName: item, BranchLocation: branch, Direction: dir, Quantity: qty, Timestamp: local.UTC(), ActorName: actor,
		}))
	}
	add(branchA, "Pen", entity.DirectionIn, 50, time.Date(2026, 2, 20, 10, 0, 0, 0, loc), "Priya Sharma")
	add(branchA, "Pen", entity.DirectionOut, 5, time.Date(2026, 3, 2, 10, 0, 0, 0, loc), "Ravi Kumar")
	add(branchA, "Stapler", entity.DirectionIn, 2, time.Date(2026, 3, 10, 0, 30, 0, 0, loc), "Priya Sharma")
	add(branchA, "Pen", entity.DirectionOut, 60, time.Date(2026, 3, 10, 9, 0, 0, 0, loc), "Priya Sharma")
	add(branchB, "Pen", entity.DirectionIn, 7, time.Date(2026, 3, 10, 8, 0, 0, 0, loc), "Amit Patel")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
	return s, func() time.Time { return now }
}

func TestGetSummary_TodayAndMonthToDate(t *testing.T) {
	store, clock := fixture(t)
	uc := analytics.NewDashboardUseCase(appinv.NewLoader(store, store), store, kolkata(t)).WithClock(clock)

	sum, err := uc.GetSummary(context.Background(), domaininv.ForBranch(branchA))
	require.NoError(t, err)

	assert.Equal(t, branchA, sum.Branch)
	assert.Equal(t, "BOE-KA-2024-0142", sum.BOECode)

	// Hoy: stapler in 2 (00:30 local, aún 9 de marzo en UTC) y pen out 60.
	assert.Equal(t, 2, sum.Today.Summary.Entries)
	assert.Equal(t, int64(2), sum.Today.Summary.InQty)
	assert.Equal(t, int64(60), sum.Today.Summary.OutQty)
	assert.Equal(t, int64(-58), sum.Today.Summary.Net)
	assert.Len(t, sum.Today.Activity, 2)
	assert.Equal(t, "Tue, 10 Mar 2026", sum.Today.Label)

	assert.Equal(t, 3, sum.MonthToDate.Summary.Entries)
	assert.Equal(t, int64(65), sum.StockOut)
	assert.Equal(t, int64(2), sum.StockIn)

	// Pen: 50 - 5 - 60 → 0 (recortado); Stapler 2 con umbral 2 → bajo.
	assert.Equal(t, int64(2), sum.ClosingStock)
	assert.Equal(t, 2, sum.LowStockCount)
	assert.Equal(t, sum.ClosingStock, sum.MonthToDate.ClosingStock)

	require.Len(t, sum.RecentMovements, 4)
	assert.Equal(t, int64(60), sum.RecentMovements[0].Quantity)
	assert.Equal(t, "March 2026", sum.DateLabel)
}

func TestGetSummary_EmptyLogIsZeroNotError(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewDashboardUseCase(appinv.NewLoader(store, store), store, time.UTC)

	sum, err := uc.GetSummary(context.Background(), domaininv.AllBranches())
	require.NoError(t, err)
	assert.Zero(t, sum.ClosingStock)
	assert.Empty(t, sum.RecentMovements)
	assert.Zero(t, sum.Today.Summary.Entries)
}

func TestDailyReport(t *testing.T) {
	store, clock := fixture(t)
	uc := analytics.NewDashboardUseCase(appinv.NewLoader(store, store), store, kolkata(t)).WithClock(clock)

	rep, err := uc.DailyReport(context.Background(), domaininv.AllBranches(), "2026-03-01", "2026-03-10")
	require.NoError(t, err)

	require.Len(t, rep.Days, 2)
	assert.Equal(t, "2026-03-02", rep.Days[0].Date)
	assert.Equal(t, int64(-5), rep.Days[0].Net)
	assert.Equal(t, "2026-03-10", rep.Days[1].Date)
	assert.Equal(t, int64(9), rep.Days[1].InQty)
	require.Len(t, rep.Months, 1)
	assert.Equal(t, int64(65), rep.Months[0].OutQty)

	_, err = uc.DailyReport(context.Background(), domaininv.AllBranches(), "march", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestOverview_BranchBreakdown(t *testing.T) {
	store, _ := fixture(t)
	uc := analytics.NewBranchOverviewUseCase(appinv.NewLoader(store, store), store, store)

	ov, err := uc.Overview(context.Background(), domaininv.AllBranches())
	require.NoError(t, err)

	require.Len(t, ov.Branches, 3)
	a := ov.Branches[0]
	assert.Equal(t, branchA, a.Branch)
	assert.Equal(t, 4, a.EntryCount)
	assert.Equal(t, int64(52), a.InQty)
	assert.Equal(t, int64(65), a.OutQty)
	assert.Equal(t, 2, a.EmployeeCount)
	assert.Equal(t, 2, a.ActiveActors)
	assert.Equal(t, int64(2), a.ClosingStock)

	b := ov.Branches[1]
	assert.Equal(t, branchB, b.Branch)
	assert.Equal(t, int64(7), b.ClosingStock, "sin interferencia de la sucursal A")
	assert.Equal(t, "BOE-KA-2024-0200", b.BOECode)

	c := ov.Branches[2]
	assert.Equal(t, "South Hub - Chennai", c.Branch)
	assert.Zero(t, c.EntryCount)
	assert.Zero(t, c.EmployeeCount)

	assert.Equal(t, 5, ov.TotalEntries)
	// El piso en cero es por sucursal: la salida de 60 en A no consume la entrada de B.
	assert.Equal(t, a.ClosingStock+b.ClosingStock, ov.ClosingStock)
	assert.Equal(t, int64(9), ov.ClosingStock)
}

func TestRoster(t *testing.T) {
	store, _ := fixture(t)
	uc := analytics.NewBranchOverviewUseCase(appinv.NewLoader(store, store), store, store)

	all, err := uc.Roster(context.Background(), domaininv.AllBranches())
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)

	onlyB, err := uc.Roster(context.Background(), domaininv.ForBranch(branchB))
	require.NoError(t, err)
	require.Equal(t, 1, onlyB.Count)
	assert.Equal(t, "Amit Patel", onlyB.Employees[0].Name)
}

type failingSuppliers struct{}

func (failingSuppliers) ListSuppliers(context.Context) ([]entity.Supplier, error) {
	return nil, domain.NewTransportError("list suppliers", errors.New("502 Bad Gateway"))
}

func TestSuppliers(t *testing.T) {
	store, _ := fixture(t)
	store.AddSuppliers(memory.DefaultSuppliers()...)
	uc := analytics.NewBranchOverviewUseCase(appinv.NewLoader(store, store), store, store)

	all, err := uc.Suppliers(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)
	assert.Equal(t, 3, all.ActiveCount)
	assert.Equal(t, "Classmate Stationery", all.Suppliers[0].Name)
	assert.Equal(t, "inactive", all.Suppliers[2].Status)

	active, err := uc.Suppliers(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 3, active.Count)
	assert.Equal(t, 3, active.ActiveCount)
	for _, s := range active.Suppliers {
		assert.Equal(t, "active", s.Status)
	}

	broken := analytics.NewBranchOverviewUseCase(appinv.NewLoader(store, store), store, failingSuppliers{})
	_, err = broken.Suppliers(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrTransport)
}
