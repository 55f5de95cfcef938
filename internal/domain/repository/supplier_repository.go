package repository

import (
	"context"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// SupplierRepository puerto de lectura del directorio de proveedores.
type SupplierRepository interface {
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
}
