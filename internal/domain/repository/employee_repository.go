package repository

import (
	"context"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// EmployeeRepository puerto de lectura del personal y de las sucursales.
type EmployeeRepository interface {
	ListEmployees(ctx context.Context, branch string) ([]entity.Employee, error)
	ListBranches(ctx context.Context) ([]entity.Branch, error)
}
