package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-register/internal/application/dto"
	appinv "github.com/jhoicas/stock-register/internal/application/inventory"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

// BranchOverviewUseCase panorama de la oficina central: actividad, roster, proveedores y stock por sucursal.
type BranchOverviewUseCase struct {
	loader    *appinv.Loader
	employees repository.EmployeeRepository
	suppliers repository.SupplierRepository
}

// NewBranchOverviewUseCase construye el caso de uso.
func NewBranchOverviewUseCase(
	loader *appinv.Loader,
	employees repository.EmployeeRepository,
	suppliers repository.SupplierRepository,
) *BranchOverviewUseCase {
	return &BranchOverviewUseCase{loader: loader, employees: employees, suppliers: suppliers}
}

// Overview desglose de todas las sucursales visibles en scope, con stock reconstruido por sucursal.
func (uc *BranchOverviewUseCase) Overview(ctx context.Context, scope domaininv.BranchScope) (*dto.BranchOverviewDTO, error) {
	type dataResult struct {
		catalog []entity.CatalogItem
		records []entity.MovementRecord
		err     error
	}
	type rosterResult struct {
		employees []entity.Employee
		branches  []entity.Branch
		err       error
	}

	dataCh := make(chan dataResult, 1)
	rosterCh := make(chan rosterResult, 1)

	go func() {
		catalog, records, err := uc.loader.Load(ctx, scope)
		dataCh <- dataResult{catalog, records, err}
	}()
	go func() {
		employees, err := uc.employees.ListEmployees(ctx, scope.Location())
		if err != nil {
			rosterCh <- rosterResult{err: err}
			return
		}
		branches, err := uc.employees.ListBranches(ctx)
		rosterCh <- rosterResult{employees, branches, err}
	}()

	data := <-dataCh
	roster := <-rosterCh

	if data.err != nil {
		return nil, fmt.Errorf("panorama de sucursales: %w", data.err)
	}
	if roster.err != nil {
		return nil, fmt.Errorf("panorama de sucursales: roster: %w", roster.err)
	}

	// Las sucursales registradas sin movimientos ni personal también aparecen.
	seed := append([]entity.Employee{}, roster.employees...)
	for _, b := range roster.branches {
		if scope.Includes(b.Location) {
			seed = append(seed, entity.Employee{BranchLocation: b.Location})
		}
	}

	agg := domaininv.NewAggregator(data.catalog, data.records, scope, nil)
	breakdown := agg.BranchBreakdown(seed)

	out := &dto.BranchOverviewDTO{
		Branches:     make([]dto.BranchSummaryDTO, 0, len(breakdown)),
		TotalEntries: len(agg.Records()),
		ClosingStock: agg.TotalQuantity(),
		AlertCount:   agg.AlertCount(),
	}
	for _, b := range breakdown {
		branchAgg := domaininv.NewAggregator(data.catalog, data.records, domaininv.ForBranch(b.Branch), nil)
		out.Branches = append(out.Branches, dto.BranchSummaryDTO{
			Branch:          b.Branch,
			BOECode:         boeFor(roster.branches, b.Branch),
			EntryCount:      b.EntryCount,
			InQty:           b.InQty,
			OutQty:          b.OutQty,
			EmployeeCount:   countEmployees(roster.employees, b.Branch),
			ActiveActors:    b.ActiveActors,
			ClosingStock:    branchAgg.TotalQuantity(),
			LowStockCount:   len(branchAgg.LowStockItems()),
			OutOfStockCount: len(branchAgg.OutOfStockItems()),
		})
	}
	return out, nil
}

// Roster integrantes del personal del alcance.
func (uc *BranchOverviewUseCase) Roster(ctx context.Context, scope domaininv.BranchScope) (*dto.RosterDTO, error) {
	employees, err := uc.employees.ListEmployees(ctx, scope.Location())
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	out := make([]dto.EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		out = append(out, dto.FromEmployee(e))
	}
	return &dto.RosterDTO{Branch: scope.String(), Count: len(out), Employees: out}, nil
}

// Suppliers directorio de proveedores. activeOnly omite los inactivos.
func (uc *BranchOverviewUseCase) Suppliers(ctx context.Context, activeOnly bool) (*dto.SupplierListDTO, error) {
	list, err := uc.suppliers.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("proveedores: %w", err)
	}
	out := make([]dto.SupplierDTO, 0, len(list))
	active := 0
	for _, s := range list {
		if s.Active {
			active++
		} else if activeOnly {
			continue
		}
		out = append(out, dto.FromSupplier(s))
	}
	return &dto.SupplierListDTO{Count: len(out), ActiveCount: active, Suppliers: out}, nil
}

func countEmployees(roster []entity.Employee, branch string) int {
	n := 0
	for _, e := range roster {
		if strings.TrimSpace(e.BranchLocation) == branch {
			n++
		}
	}
	return n
}
