package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo lectura del personal y del registro de sucursales.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

type employeeRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Role           string `db:"role"`
	Initials       string `db:"initials"`
	BranchLocation string `db:"branch_location"`
}

type branchRow struct {
	ID       string `db:"id"`
	Location string `db:"location"`
	BOECode  string `db:"boe_code"`
}

// ListEmployees lista el personal de branch, o de todas las sucursales si está vacío.
func (r *EmployeeRepo) ListEmployees(ctx context.Context, branch string) ([]entity.Employee, error) {
	sel := builder.Select("id", "name", "role", "initials", "branch_location").From(employeesTable)
	query, args, err := branchFilter(sel, "branch_location", branch).OrderBy("branch_location", "name").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []employeeRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, wrapErr("list employees", err)
	}
	out := make([]entity.Employee, len(rows))
	for i, row := range rows {
		out[i] = entity.Employee(row)
	}
	return out, nil
}

// ListBranches devuelve el registro de sucursales ordenado por ubicación.
func (r *EmployeeRepo) ListBranches(ctx context.Context) ([]entity.Branch, error) {
	query, args, err := builder.Select("id", "location", "boe_code").From(branchesTable).OrderBy("location").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []branchRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, wrapErr("list branches", err)
	}
	out := make([]entity.Branch, len(rows))
	for i, row := range rows {
		out[i] = entity.Branch(row)
	}
	return out, nil
}
