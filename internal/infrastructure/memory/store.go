// Package memory implementa los puertos de almacenamiento en memoria (modo desarrollo y tests).
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

// Store guarda catálogo, log de movimientos, logs de auditoría y roster protegidos por un mutex.
// Todas las lecturas devuelven copias.
type Store struct {
	mu        sync.RWMutex
	catalog   []entity.CatalogItem
	movements []entity.MovementRecord
	edits     []entity.EditLogEntry
	deletions []entity.DeletionLogEntry
	employees []entity.Employee
	branches  []entity.Branch
	suppliers []entity.Supplier
}

var (
	_ repository.CatalogRepository  = (*Store)(nil)
	_ repository.MovementRepository = (*Store)(nil)
	_ repository.AuditLogRepository = (*Store)(nil)
	_ repository.EmployeeRepository = (*Store)(nil)
	_ repository.SupplierRepository = (*Store)(nil)
)

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{}
}

// SetCatalog reemplaza el catálogo.
func (s *Store) SetCatalog(items []entity.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = append([]entity.CatalogItem(nil), items...)
}

// AddEmployees agrega integrantes al roster.
func (s *Store) AddEmployees(list ...entity.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append(s.employees, list...)
}

// AddBranches agrega sucursales.
func (s *Store) AddBranches(list ...entity.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches = append(s.branches, list...)
}

// AddSuppliers agrega proveedores al directorio.
func (s *Store) AddSuppliers(list ...entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers = append(s.suppliers, list...)
}

// FetchCatalog implementa repository.CatalogRepository.
func (s *Store) FetchCatalog(_ context.Context) ([]entity.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.CatalogItem{}, s.catalog...), nil
}

// FetchMovements implementa repository.MovementRepository.
func (s *Store) FetchMovements(_ context.Context, branch string) ([]entity.MovementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.MovementRecord, 0, len(s.movements))
	for _, m := range s.movements {
		if matchesBranch(branch, m.BranchLocation) {
			out = append(out, cloneMovement(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// GetMovement implementa repository.MovementRepository.
func (s *Store) GetMovement(_ context.Context, id string) (*entity.MovementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
	}
	m := cloneMovement(s.movements[i])
	return &m, nil
}

// InsertMovement implementa repository.MovementRepository. Asigna ID si viene vacío.
func (s *Store) InsertMovement(_ context.Context, record *entity.MovementRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if s.indexOf(record.ID) >= 0 {
		return fmt.Errorf("%w: movimiento %s ya existe", domain.ErrInvalidInput, record.ID)
	}
	s.movements = append(s.movements, cloneMovement(*record))
	return nil
}

// UpdateMovement implementa repository.MovementRepository.
func (s *Store) UpdateMovement(_ context.Context, id string, patch entity.MovementPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
	}
	editedAt := patch.EditedAt.UTC()
	s.movements[i].Direction = patch.Direction
	s.movements[i].Quantity = patch.Quantity
	s.movements[i].IsEdited = true
	s.movements[i].EditedAt = &editedAt
	return nil
}

// DeleteMovement implementa repository.MovementRepository.
func (s *Store) DeleteMovement(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
	}
	s.movements = append(s.movements[:i], s.movements[i+1:]...)
	return nil
}

// InsertEditLogEntry implementa repository.AuditLogRepository.
func (s *Store) InsertEditLogEntry(_ context.Context, entry *entity.EditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.edits = append(s.edits, *entry)
	return nil
}

// InsertDeletionLogEntry implementa repository.AuditLogRepository.
func (s *Store) InsertDeletionLogEntry(_ context.Context, entry *entity.DeletionLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.deletions = append(s.deletions, *entry)
	return nil
}

// FetchEditLog implementa repository.AuditLogRepository (más reciente primero).
func (s *Store) FetchEditLog(_ context.Context, branch string) ([]entity.EditLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.EditLogEntry, 0, len(s.edits))
	for i := len(s.edits) - 1; i >= 0; i-- {
		if matchesBranch(branch, s.edits[i].Branch) {
			out = append(out, s.edits[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EditedAt.After(out[j].EditedAt) })
	return out, nil
}

// FetchDeletionLog implementa repository.AuditLogRepository (más reciente primero).
func (s *Store) FetchDeletionLog(_ context.Context, branch string) ([]entity.DeletionLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.DeletionLogEntry, 0, len(s.deletions))
	for i := len(s.deletions) - 1; i >= 0; i-- {
		if matchesBranch(branch, s.deletions[i].Branch) {
			out = append(out, s.deletions[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeletedAt.After(out[j].DeletedAt) })
	return out, nil
}

// ListEmployees implementa repository.EmployeeRepository.
func (s *Store) ListEmployees(_ context.Context, branch string) ([]entity.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if matchesBranch(branch, e.BranchLocation) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListBranches implementa repository.EmployeeRepository.
func (s *Store) ListBranches(_ context.Context) ([]entity.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Branch{}, s.branches...), nil
}

// ListSuppliers implementa repository.SupplierRepository. Orden por nombre.
func (s *Store) ListSuppliers(_ context.Context) ([]entity.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]entity.Supplier{}, s.suppliers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.movements {
		if s.movements[i].ID == id {
			return i
		}
	}
	return -1
}

func matchesBranch(filter, branch string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || filter == strings.TrimSpace(branch)
}

func cloneMovement(m entity.MovementRecord) entity.MovementRecord {
	if m.EditedAt != nil {
		t := *m.EditedAt
		m.EditedAt = &t
	}
	return m
}
