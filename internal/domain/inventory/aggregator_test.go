package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/inventory"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func sampleCatalog() []entity.CatalogItem {
	return []entity.CatalogItem{
		item("1", "Pen", 10),
		item("2", "Stapler", 3),
		item("3", "Toner", 0),
	}
}

func TestAggregator_EmptyInputsYieldZeroAggregates(t *testing.T) {
	agg := inventory.NewAggregator(nil, nil, inventory.AllBranches(), nil)

	assert.Zero(t, agg.TotalQuantity())
	assert.Empty(t, agg.LowStockItems())
	assert.Empty(t, agg.OutOfStockItems())
	assert.Zero(t, agg.AlertCount())
	assert.Empty(t, agg.MovementsOnDay(baseTime))
	assert.Empty(t, agg.BranchBreakdown(nil))
	assert.Equal(t, inventory.MovementSummary{}, inventory.Summarize(nil))
	assert.True(t, agg.StockValue().Gross.IsZero())
}

func TestAggregator_StockQueries(t *testing.T) {
	records := []entity.MovementRecord{
		in("Pen", 40, at(1)),
		in("Stapler", 2, at(2)),
		out("Pen", 5, at(3)),
	}
	agg := inventory.NewAggregator(sampleCatalog(), records, inventory.AllBranches(), time.UTC)

	assert.Equal(t, int64(37), agg.TotalQuantity())

	low := agg.LowStockItems()
	require.Len(t, low, 1)
	assert.Equal(t, "Stapler", low[0].Item.Name)

	outOfStock := agg.OutOfStockItems()
	require.Len(t, outOfStock, 1)
	assert.Equal(t, "Toner", outOfStock[0].Item.Name)
	assert.Equal(t, 2, agg.AlertCount())
}

func TestAggregator_MovementsInRangeIsInclusive(t *testing.T) {
	records := []entity.MovementRecord{in("Pen", 1, at(0)), in("Pen", 2, at(10)), in("Pen", 3, at(20))}
	agg := inventory.NewAggregator(sampleCatalog(), records, inventory.AllBranches(), time.UTC)

	got := agg.MovementsInRange(at(0), at(10))

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].Quantity)
	assert.Equal(t, int64(2), got[1].Quantity)
	assert.Empty(t, agg.MovementsInRange(at(11), at(19)))
}

func TestAggregator_MovementsOnDayUsesLocalCalendar(t *testing.T) {
	loc := kolkata(t)
	// 20:00 UTC del 9 de marzo es 01:30 del 10 de marzo en Kolkata.
	lateUTC := time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)
	earlyUTC := time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC) // 22:30 del 9 en Kolkata
	records := []entity.MovementRecord{in("Pen", 4, lateUTC), in("Pen", 6, earlyUTC)}
	agg := inventory.NewAggregator(sampleCatalog(), records, inventory.AllBranches(), loc)

	day := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
	got := agg.MovementsOnDay(day)

	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].Quantity)
}

func TestAggregator_MovementsInMonth(t *testing.T) {
	loc := kolkata(t)
	records := []entity.MovementRecord{
		in("Pen", 1, time.Date(2026, 2, 28, 19, 0, 0, 0, time.UTC)), // 1 de marzo local
		in("Pen", 2, time.Date(2026, 3, 31, 17, 0, 0, 0, time.UTC)), // 31 de marzo local
		in("Pen", 3, time.Date(2026, 3, 31, 19, 0, 0, 0, time.UTC)), // 1 de abril local
	}
	agg := inventory.NewAggregator(sampleCatalog(), records, inventory.AllBranches(), loc)

	got := agg.MovementsInMonth(time.Date(2026, 3, 15, 0, 0, 0, 0, loc))

	require.Len(t, got, 2)
	assert.Equal(t, int64(3), inventory.Summarize(got).InQty)
}

func TestAggregator_RecentMovementsNewestFirst(t *testing.T) {
	records := []entity.MovementRecord{in("Pen", 1, at(1)), in("Pen", 2, at(2)), in("Pen", 3, at(3))}
	agg := inventory.NewAggregator(sampleCatalog(), records, inventory.AllBranches(), nil)

	got := agg.RecentMovements(2)

	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].Quantity)
	assert.Equal(t, int64(2), got[1].Quantity)
	assert.Len(t, agg.RecentMovements(10), 3)
	assert.Empty(t, agg.RecentMovements(0))
}

func TestSummarize(t *testing.T) {
	records := []entity.MovementRecord{in("Pen", 10, at(1)), out("Pen", 4, at(2)), out("Stapler", 1, at(3))}

	s := inventory.Summarize(records)

	assert.Equal(t, inventory.MovementSummary{
		Entries: 3, InEntries: 1, OutEntries: 2, InQty: 10, OutQty: 5, Net: 5,
	}, s)
}

func TestAggregator_BranchBreakdown(t *testing.T) {
	b1 := in("Pen", 10, at(1))
	b2 := out("Pen", 3, at(2))
	b2.ActorName = "Priya Sharma"
	b3 := in("Stapler", 2, at(3))
	b3.BranchLocation = branchB
	b3.ActorName = "Amit Patel"
	roster := []entity.Employee{
		{Name: "Rajesh Kumar", BranchLocation: branchA},
		{Name: "Priya Sharma", BranchLocation: branchA},
		{Name: "Amit Patel", BranchLocation: branchB},
		{Name: "Neha Gupta", BranchLocation: "South Hub - Chennai"},
	}

	agg := inventory.NewAggregator(sampleCatalog(), []entity.MovementRecord{b1, b2, b3}, inventory.AllBranches(), nil)
	got := agg.BranchBreakdown(roster)

	require.Len(t, got, 3)
	assert.Equal(t, inventory.BranchSummary{
		Branch: branchA, EntryCount: 2, InQty: 10, OutQty: 3, EmployeeCount: 2, ActiveActors: 2,
	}, got[0])
	assert.Equal(t, inventory.BranchSummary{
		Branch: branchB, EntryCount: 1, InQty: 2, EmployeeCount: 1, ActiveActors: 1,
	}, got[1])
	assert.Equal(t, "South Hub - Chennai", got[2].Branch)
	assert.Zero(t, got[2].EntryCount)

	scoped := inventory.NewAggregator(sampleCatalog(), []entity.MovementRecord{b1, b2, b3}, inventory.ForBranch(branchB), nil)
	onlyB := scoped.BranchBreakdown(roster)
	require.Len(t, onlyB, 1)
	assert.Equal(t, branchB, onlyB[0].Branch)
}

func TestAggregator_PerBranchReconstruction(t *testing.T) {
	other := in("Pen", 50, at(2))
	other.BranchLocation = branchB
	records := []entity.MovementRecord{in("Pen", 5, at(1)), other}

	agg := inventory.NewAggregator(sampleCatalog(), records, inventory.AllBranches(), nil)

	assert.Equal(t, int64(55), agg.Snapshot().QuantityOf("Pen"))
	assert.Equal(t, int64(5), agg.PerBranchReconstruction(branchA).QuantityOf("Pen"))
	assert.Equal(t, int64(50), agg.PerBranchReconstruction(branchB).QuantityOf("Pen"))

	scoped := inventory.NewAggregator(sampleCatalog(), records, inventory.ForBranch(branchA), nil)
	assert.Zero(t, scoped.PerBranchReconstruction(branchB).QuantityOf("Pen"), "fuera del alcance no hay movimientos")
}

func TestDailyAndMonthlyRollup(t *testing.T) {
	loc := kolkata(t)
	records := []entity.MovementRecord{
		in("Pen", 5, time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)),  // 10 mar local
		out("Pen", 2, time.Date(2026, 3, 10, 5, 0, 0, 0, time.UTC)), // 10 mar local
		in("Pen", 7, time.Date(2026, 3, 9, 5, 0, 0, 0, time.UTC)),   // 9 mar local
		in("Pen", 1, time.Date(2026, 4, 1, 5, 0, 0, 0, time.UTC)),
	}

	daily := inventory.DailyRollup(records, loc)
	require.Len(t, daily, 3)
	assert.Equal(t, inventory.DailyTotal{Date: "2026-03-09", InQty: 7}, daily[0])
	assert.Equal(t, inventory.DailyTotal{Date: "2026-03-10", InQty: 5, OutQty: 2}, daily[1])

	monthly := inventory.MonthlyRollup(records, loc)
	require.Len(t, monthly, 2)
	assert.Equal(t, inventory.MonthlyTotal{Month: "2026-03", InQty: 12, OutQty: 2}, monthly[0])
	assert.Equal(t, inventory.MonthlyTotal{Month: "2026-04", InQty: 1}, monthly[1])
}

func TestAggregator_StockValue(t *testing.T) {
	catalog := []entity.CatalogItem{item("1", "Pen", 10)}
	catalog[0].UnitRate = decimal.RequireFromString("12.50")
	catalog[0].TaxRatePercent = decimal.NewFromInt(18)
	records := []entity.MovementRecord{in("Pen", 4, at(1)), in("Loose Clip", 100, at(2))}

	v := inventory.NewAggregator(catalog, records, inventory.AllBranches(), nil).StockValue()

	assert.Equal(t, int64(104), v.Units)
	assert.True(t, decimal.NewFromInt(50).Equal(v.Net), "net=%s", v.Net)
	assert.True(t, decimal.NewFromInt(9).Equal(v.Tax), "tax=%s", v.Tax)
	assert.True(t, decimal.NewFromInt(59).Equal(v.Gross), "gross=%s", v.Gross)
}
