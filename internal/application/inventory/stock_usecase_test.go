package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/stock-register/internal/application/inventory"
	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
)

func TestSnapshot_ReconstructsWithStatuses(t *testing.T) {
	store := newStore()
	seedMovement(t, store, branchA, "Pen", entity.DirectionIn, 8, fixedNow.Add(-3*time.Hour))
	seedMovement(t, store, branchA, "Pen", entity.DirectionIn, 5, fixedNow.Add(-2*time.Hour))
	seedMovement(t, store, branchA, "Pen", entity.DirectionOut, 3, fixedNow.Add(-time.Hour))
	seedMovement(t, store, branchA, "Glue", entity.DirectionIn, 2, fixedNow.Add(-time.Hour))
	uc := appinv.NewStockUseCase(appinv.NewLoader(store, store), nil, nil).WithClock(clock)

	snap, err := uc.Snapshot(context.Background(), domaininv.ForBranch(branchA))
	require.NoError(t, err)

	require.Len(t, snap.Items, 3)
	assert.Equal(t, "Pen", snap.Items[0].ItemName)
	assert.Equal(t, int64(10), snap.Items[0].Quantity)
	assert.Equal(t, "Low Stock", snap.Items[0].Status)
	assert.Equal(t, "Out of Stock", snap.Items[1].Status)
	assert.Equal(t, "Glue", snap.Items[2].ItemName)
	assert.False(t, snap.Items[2].Linked)
	assert.Equal(t, "Uncategorized", snap.Items[2].Category)
	assert.Equal(t, int64(12), snap.TotalQuantity)
	assert.Equal(t, 1, snap.LowStockCount)
	assert.Equal(t, 1, snap.OutOfStockCount)
	assert.False(t, snap.Stale)
	assert.Equal(t, "100", snap.Valuation.Net.String())
}

func TestSnapshot_FallsBackToLastKnownOnFetchFailure(t *testing.T) {
	store := newStore()
	seedMovement(t, store, branchA, "Pen", entity.DirectionIn, 40, fixedNow.Add(-time.Hour))
	cache := newMapCache()
	scope := domaininv.ForBranch(branchA)

	healthy := appinv.NewStockUseCase(appinv.NewLoader(store, store), cache, nil).WithClock(clock)
	first, err := healthy.Snapshot(context.Background(), scope)
	require.NoError(t, err)

	boom := domain.NewTransportError("fetch movements", errors.New("503 Service Unavailable"))
	broken := appinv.NewStockUseCase(appinv.NewLoader(store, failingMovements{err: boom}), cache, nil).WithClock(clock)

	stale, err := broken.Snapshot(context.Background(), scope)
	require.NoError(t, err)
	assert.True(t, stale.Stale)
	assert.Contains(t, stale.LoadError, "503")
	assert.Equal(t, first.Items, stale.Items)

	_, err = broken.Snapshot(context.Background(), domaininv.ForBranch(branchB))
	assert.True(t, errors.Is(err, domain.ErrTransport), "sin snapshot previo se propaga el error")

	noCache := appinv.NewStockUseCase(appinv.NewLoader(store, failingMovements{err: boom}), nil, nil)
	_, err = noCache.Snapshot(context.Background(), scope)
	assert.True(t, errors.Is(err, domain.ErrTransport))
}

func TestSnapshot_BranchNamedAllKeepsItsOwnCacheEntry(t *testing.T) {
	store := newStore()
	seedMovement(t, store, branchA, "Pen", entity.DirectionIn, 40, fixedNow.Add(-time.Hour))
	seedMovement(t, store, "all", "Pen", entity.DirectionIn, 3, fixedNow.Add(-time.Hour))
	cache := newMapCache()
	uc := appinv.NewStockUseCase(appinv.NewLoader(store, store), cache, nil).WithClock(clock)

	head, err := uc.Snapshot(context.Background(), domaininv.AllBranches())
	require.NoError(t, err)
	named, err := uc.Snapshot(context.Background(), domaininv.ForBranch("all"))
	require.NoError(t, err)
	require.Equal(t, int64(43), head.TotalQuantity)
	require.Equal(t, int64(3), named.TotalQuantity)

	boom := domain.NewTransportError("fetch movements", errors.New("timeout"))
	broken := appinv.NewStockUseCase(appinv.NewLoader(store, failingMovements{err: boom}), cache, nil).WithClock(clock)

	stale, err := broken.Snapshot(context.Background(), domaininv.AllBranches())
	require.NoError(t, err)
	assert.True(t, stale.Stale)
	assert.Equal(t, int64(43), stale.TotalQuantity, "la vista de oficina central no se pisa con la sucursal \"all\"")
}

func TestNotifications_OutOfStockFirst(t *testing.T) {
	store := newStore()
	seedMovement(t, store, branchA, "Pen", entity.DirectionIn, 3, fixedNow.Add(-time.Hour))
	uc := appinv.NewStockUseCase(appinv.NewLoader(store, store), nil, nil).WithClock(clock)

	list, err := uc.Notifications(context.Background(), domaininv.ForBranch(branchA))
	require.NoError(t, err)

	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Toner", list.Notifications[0].ItemName)
	assert.Equal(t, "alert", list.Notifications[0].Severity)
	assert.Equal(t, "Pen below reorder level (3 of 10)", list.Notifications[1].Message)
}

func TestCatalog_Search(t *testing.T) {
	store := newStore()
	uc := appinv.NewStockUseCase(appinv.NewLoader(store, store), nil, nil)

	all, err := uc.Catalog(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := uc.Catalog(context.Background(), "print")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Toner", found[0].Name)
}

func TestReplenishment_PrioritizesOutOfStockAndOutflow(t *testing.T) {
	store := newStore()
	seedMovement(t, store, branchA, "Pen", entity.DirectionIn, 20, fixedNow.Add(-72*time.Hour))
	seedMovement(t, store, branchA, "Pen", entity.DirectionOut, 14, fixedNow.Add(-24*time.Hour))
	uc := appinv.NewReplenishmentUseCase(appinv.NewLoader(store, store)).WithClock(clock)

	list, err := uc.GenerateReplenishmentList(context.Background(), domaininv.ForBranch(branchA))
	require.NoError(t, err)

	require.Len(t, list, 2)
	toner := list[0]
	assert.Equal(t, "Toner", toner.ItemName)
	assert.Equal(t, 1, toner.Priority)
	assert.Equal(t, int64(6), toner.IdealStock)
	assert.Equal(t, int64(6), toner.SuggestedOrderQty)
	assert.Equal(t, "12000", toner.EstimatedCost.String())
	assert.Equal(t, "2160", toner.EstimatedTax.String())

	pen := list[1]
	assert.Equal(t, int64(6), pen.CurrentStock)
	assert.Equal(t, int64(15), pen.IdealStock)
	assert.Equal(t, int64(9), pen.SuggestedOrderQty)
	assert.Equal(t, int64(14), pen.OutflowLast30Days)
	assert.Equal(t, 2, pen.Priority)
}
