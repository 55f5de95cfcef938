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

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	branchA = "Central Warehouse - Bangalore"
	branchB = "North Depot - Mysore"
)

var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time { return baseTime.Add(time.Duration(minutes) * time.Minute) }

func item(id, name string, reorder int64) entity.CatalogItem {
	return entity.CatalogItem{
		ID:               id,
		Name:             name,
		Category:         "Writing",
		Unit:             "Pcs",
		ReorderThreshold: reorder,
		UnitRate:         decimal.NewFromInt(10),
		TaxRatePercent:   decimal.NewFromInt(18),
	}
}

func mv(name string, dir entity.Direction, qty int64, ts time.Time) entity.MovementRecord {
	return entity.MovementRecord{
		ItemName:       name,
		BranchLocation: branchA,
		Direction:      dir,
		Quantity:       qty,
		Timestamp:      ts,
		ActorName:      "Rajesh Kumar",
	}
}

func in(name string, qty int64, ts time.Time) entity.MovementRecord {
	return mv(name, entity.DirectionIn, qty, ts)
}

func out(name string, qty int64, ts time.Time) entity.MovementRecord {
	return mv(name, entity.DirectionOut, qty, ts)
}

func penCatalog() []entity.CatalogItem {
	return []entity.CatalogItem{item("itm-pen", "Pen", 10)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconstrucción
// ──────────────────────────────────────────────────────────────────────────────

func TestReconstruct_OrderSensitivity(t *testing.T) {
	records := []entity.MovementRecord{in("Pen", 10, at(1)), out("Pen", 15, at(2)), in("Pen", 5, at(3))}

	snap := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())

	line, ok := snap.LineByName("Pen")
	require.True(t, ok)
	assert.Equal(t, int64(5), line.Quantity, "la salida de 15 recorta a 0 y luego entran 5")
	assert.Equal(t, int64(5), line.DiscardedOut)
	assert.Equal(t, int64(15), line.RequestedIn)
	assert.Equal(t, int64(15), line.RequestedOut)
}

func TestReconstruct_SortsUnorderedInput(t *testing.T) {
	ordered := []entity.MovementRecord{in("Pen", 10, at(1)), out("Pen", 15, at(2)), in("Pen", 5, at(3))}
	shuffled := []entity.MovementRecord{ordered[2], ordered[0], ordered[1]}

	a := inventory.Reconstruct(penCatalog(), ordered, inventory.AllBranches())
	b := inventory.Reconstruct(penCatalog(), shuffled, inventory.AllBranches())

	assert.Equal(t, a.Lines(), b.Lines())
	assert.Equal(t, at(3), shuffled[0].Timestamp, "la entrada no debe reordenarse in situ")
}

func TestReconstruct_StableForEqualTimestamps(t *testing.T) {
	// Mismo instante: se respeta el orden de entrada (out antes que in → 0 + 4).
	records := []entity.MovementRecord{out("Pen", 3, at(1)), in("Pen", 4, at(1))}

	snap := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())

	assert.Equal(t, int64(4), snap.QuantityOf("Pen"))
}

func TestReconstruct_FloorInvariantOnEveryPrefix(t *testing.T) {
	records := []entity.MovementRecord{
		out("Pen", 4, at(1)),
		in("Pen", 3, at(2)),
		out("Pen", 9, at(3)),
		in("Pen", 12, at(4)),
		out("Pen", 2, at(5)),
		out("Pen", 20, at(6)),
	}
	for n := 0; n <= len(records); n++ {
		snap := inventory.Reconstruct(penCatalog(), records[:n], inventory.AllBranches())
		assert.GreaterOrEqual(t, snap.QuantityOf("Pen"), int64(0), "prefijo %d", n)
	}
}

func TestReconstruct_BranchIsolation(t *testing.T) {
	records := []entity.MovementRecord{in("Pen", 8, at(1)), out("Pen", 2, at(3))}
	onlyA := inventory.Reconstruct(penCatalog(), records, inventory.ForBranch(branchA))

	noise := out("Pen", 50, at(2))
	noise.BranchLocation = branchB
	extra := in("Ghost Item", 7, at(4))
	extra.BranchLocation = branchB
	mixed := inventory.Reconstruct(penCatalog(), append(records, noise, extra), inventory.ForBranch(branchA))

	assert.Equal(t, onlyA.Lines(), mixed.Lines())
	assert.Equal(t, int64(6), mixed.QuantityOf("Pen"))
	_, ok := mixed.LineByName("Ghost Item")
	assert.False(t, ok, "los nombres de otra sucursal no se sintetizan")
}

func TestReconstruct_AllBranchesClampsEachBranchSeparately(t *testing.T) {
	stockB := in("Pen", 10, at(1))
	stockB.BranchLocation = branchB
	records := []entity.MovementRecord{stockB, out("Pen", 10, at(2))}

	all := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())
	onlyA := inventory.Reconstruct(penCatalog(), records, inventory.ForBranch(branchA))
	onlyB := inventory.Reconstruct(penCatalog(), records, inventory.ForBranch(branchB))

	assert.Zero(t, onlyA.QuantityOf("Pen"), "la salida de A no tiene stock propio")
	assert.Equal(t, int64(10), onlyB.QuantityOf("Pen"))
	assert.Equal(t, int64(10), all.QuantityOf("Pen"), "la entrada de B no absorbe la salida de A")

	line, ok := all.LineByName("Pen")
	require.True(t, ok)
	assert.Equal(t, int64(10), line.RequestedIn)
	assert.Equal(t, int64(10), line.RequestedOut)
	assert.Equal(t, int64(10), line.DiscardedOut)
}

func TestReconstruct_AllBranchesEqualsSumOfBranches(t *testing.T) {
	withBranch := func(r entity.MovementRecord, branch string) entity.MovementRecord {
		r.BranchLocation = branch
		return r
	}
	records := []entity.MovementRecord{
		in("Pen", 4, at(1)),
		withBranch(in("Pen", 20, at(2)), branchB),
		out("Pen", 9, at(3)),
		withBranch(out("Pen", 5, at(4)), branchB),
		in("Pen", 3, at(5)),
		withBranch(in("Marker", 6, at(6)), branchB),
		out("Marker", 2, at(7)),
	}

	all := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())
	a := inventory.Reconstruct(penCatalog(), records, inventory.ForBranch(branchA))
	b := inventory.Reconstruct(penCatalog(), records, inventory.ForBranch(branchB))

	for _, name := range []string{"Pen", "Marker"} {
		assert.Equal(t, a.QuantityOf(name)+b.QuantityOf(name), all.QuantityOf(name), name)
		la, _ := a.LineByName(name)
		lb, _ := b.LineByName(name)
		lall, _ := all.LineByName(name)
		assert.Equal(t, la.DiscardedOut+lb.DiscardedOut, lall.DiscardedOut, name)
	}
}

func TestReconstruct_Idempotent(t *testing.T) {
	records := []entity.MovementRecord{in("Pen", 8, at(1)), out("Pen", 3, at(2)), in("Marker", 2, at(3))}

	first := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())
	second := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())

	assert.Equal(t, first.Lines(), second.Lines())
}

func TestReconstruct_CatalogStartsAtZero(t *testing.T) {
	catalog := []entity.CatalogItem{item("1", "Pen", 10), item("2", "Stapler", 3)}

	snap := inventory.Reconstruct(catalog, nil, inventory.AllBranches())

	require.Equal(t, 2, snap.Len())
	for _, l := range snap.Lines() {
		assert.Zero(t, l.Quantity)
		assert.True(t, l.Linked)
		assert.Equal(t, inventory.StatusOutOfStock, l.Status())
	}
}

func TestReconstruct_UnknownNameSynthesizesUnlinkedItem(t *testing.T) {
	records := []entity.MovementRecord{in("Glue Stick", 4, at(1)), in("Pen", 1, at(2))}

	snap := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())

	lines := snap.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Pen", lines[0].Item.Name, "el catálogo va primero")
	glue := lines[1]
	assert.False(t, glue.Linked)
	assert.Equal(t, inventory.ItemKey("unlinked:Glue Stick"), glue.Key)
	assert.Equal(t, entity.UncategorizedCategory, glue.Item.Category)
	assert.Zero(t, glue.Item.ReorderThreshold)
	assert.Equal(t, int64(4), glue.Quantity)
	assert.Equal(t, inventory.StatusInStock, glue.Status())
}

func TestReconstruct_DuplicateCatalogNamesCollapse(t *testing.T) {
	catalog := []entity.CatalogItem{item("1", "Pen", 10), item("2", "Pen", 99)}

	snap := inventory.Reconstruct(catalog, []entity.MovementRecord{in("Pen", 5, at(1))}, inventory.AllBranches())

	require.Equal(t, 1, snap.Len())
	line, _ := snap.LineByName("Pen")
	assert.Equal(t, inventory.ItemKey("1"), line.Key)
	assert.Equal(t, int64(10), line.Item.ReorderThreshold)
	assert.Equal(t, inventory.StatusLowStock, line.Status())
}

func TestReconstruct_NormalizedNamesMatchCatalog(t *testing.T) {
	catalog := []entity.CatalogItem{item("1", "Café Marker", 1)}
	records := []entity.MovementRecord{
		in("  Cafe\u0301 Marker ", 3, at(1)), // forma descompuesta con espacios
		in("café marker", 2, at(2)),          // distinto en mayúsculas: otro ítem
	}

	snap := inventory.Reconstruct(catalog, records, inventory.AllBranches())

	assert.Equal(t, int64(3), snap.QuantityOf("Café Marker"))
	require.Equal(t, 2, snap.Len())
	assert.False(t, snap.Lines()[1].Linked)
}

func TestReconstruct_IgnoresMalformedRecords(t *testing.T) {
	bad := in("Pen", 0, at(2))
	weird := mv("Pen", entity.Direction("sideways"), 4, at(3))
	huge := in("Pen", entity.MaxQuantity+1, at(4))

	snap := inventory.Reconstruct(penCatalog(), []entity.MovementRecord{in("Pen", 2, at(1)), bad, weird, huge}, inventory.AllBranches())

	assert.Equal(t, int64(2), snap.QuantityOf("Pen"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestPenScenario(t *testing.T) {
	t.Run("stock suficiente", func(t *testing.T) {
		records := []entity.MovementRecord{in("Pen", 8, at(1)), in("Pen", 5, at(2)), out("Pen", 3, at(3))}
		snap := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())

		line, ok := snap.LineByName("Pen")
		require.True(t, ok)
		assert.Equal(t, int64(10), line.Quantity)
		// q == umbral se clasifica como stock bajo (regla uniforme de estados).
		assert.Equal(t, inventory.StatusLowStock, line.Status())
	})

	t.Run("salida en exceso", func(t *testing.T) {
		records := []entity.MovementRecord{in("Pen", 8, at(1)), out("Pen", 10, at(2))}
		snap := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())

		assert.Equal(t, int64(0), snap.QuantityOf("Pen"))
		line, _ := snap.LineByName("Pen")
		assert.Equal(t, inventory.StatusOutOfStock, line.Status())
		assert.Equal(t, int64(-2), inventory.NetMovement(records))
	})
}

func TestNetMovementDivergesFromReconstruction(t *testing.T) {
	records := []entity.MovementRecord{in("Pen", 5, at(1)), out("Pen", 20, at(2))}

	snap := inventory.Reconstruct(penCatalog(), records, inventory.AllBranches())
	line, _ := snap.LineByName("Pen")

	assert.Equal(t, int64(-15), inventory.NetMovement(records))
	assert.Equal(t, int64(0), line.Quantity)
	assert.Equal(t, int64(-15), line.RequestedNet())
	assert.Equal(t, int64(15), line.DiscardedOut)
}
