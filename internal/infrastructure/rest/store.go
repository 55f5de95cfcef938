package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-register/internal/domain"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

var (
	_ repository.CatalogRepository  = (*Store)(nil)
	_ repository.MovementRepository = (*Store)(nil)
	_ repository.AuditLogRepository = (*Store)(nil)
	_ repository.EmployeeRepository = (*Store)(nil)
	_ repository.SupplierRepository = (*Store)(nil)
)

// Tablas del backend; coinciden con el esquema de postgres/migrations.
const (
	catalogTable   = "catalog_items"
	movementsTable = "stock_entries"
	editLogTable   = "edit_logs"
	deleteLogTable = "deletion_logs"
	employeesTable = "employees"
	branchesTable  = "branches"
	suppliersTable = "suppliers"
)

// Store implementa todos los puertos de almacenamiento sobre el Client.
type Store struct {
	c *Client
}

// NewStore construye el adaptador.
func NewStore(c *Client) *Store {
	return &Store{c: c}
}

// ── Filas JSON ────────────────────────────────────────────────────────────────

type catalogRow struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	HSNCode          string          `json:"hsn_code"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	UnitRate         decimal.Decimal `json:"unit_rate"`
	TaxRatePercent   decimal.Decimal `json:"tax_rate_percent"`
}

type movementRow struct {
	ID             string     `json:"id"`
	ItemName       string     `json:"item_name"`
	BranchLocation string     `json:"branch_location"`
	Direction      string     `json:"direction"`
	Quantity       int64      `json:"quantity"`
	EntryTimestamp time.Time  `json:"entry_timestamp"`
	ActorName      string     `json:"actor_name"`
	IsEdited       bool       `json:"is_edited,omitempty"`
	EditedAt       *time.Time `json:"edited_at,omitempty"`
}

type movementPatchRow struct {
	Direction string    `json:"direction"`
	Quantity  int64     `json:"quantity"`
	IsEdited  bool      `json:"is_edited"`
	EditedAt  time.Time `json:"edited_at"`
}

type editLogRow struct {
	ID               string    `json:"id"`
	MovementRecordID string    `json:"stock_entry_id"`
	ItemName         string    `json:"item_name"`
	OldDirection     string    `json:"old_direction"`
	NewDirection     string    `json:"new_direction"`
	OldQuantity      int64     `json:"old_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	EditedBy         string    `json:"edited_by"`
	Branch           string    `json:"branch_location"`
	EditedAt         time.Time `json:"edited_at"`
}

type deletionLogRow struct {
	ID                       string    `json:"id"`
	OriginalMovementRecordID string    `json:"original_entry_id"`
	ItemName                 string    `json:"item_name"`
	Direction                string    `json:"direction"`
	Quantity                 int64     `json:"quantity"`
	OriginalTimestamp        time.Time `json:"original_timestamp"`
	Branch                   string    `json:"branch_location"`
	ActorName                string    `json:"actor_name"`
	DeletedBy                string    `json:"deleted_by"`
	DeletedAt                time.Time `json:"deleted_at"`
}

type employeeRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Initials       string `json:"initials"`
	BranchLocation string `json:"branch_location"`
}

type branchRow struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	BOECode  string `json:"boe_code"`
}

type supplierRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Items   string `json:"items"`
	Active  bool   `json:"active"`
}

func (row movementRow) toEntity() entity.MovementRecord {
	m := entity.MovementRecord{
		ID:             row.ID,
		ItemName:       row.ItemName,
		BranchLocation: row.BranchLocation,
		Direction:      entity.Direction(row.Direction),
		Quantity:       row.Quantity,
		Timestamp:      row.EntryTimestamp.UTC(),
		ActorName:      row.ActorName,
		IsEdited:       row.IsEdited,
	}
	if row.EditedAt != nil {
		t := row.EditedAt.UTC()
		m.EditedAt = &t
	}
	return m
}

func selectAll(order string) url.Values {
	q := url.Values{}
	q.Set("select", "*")
	if order != "" {
		q.Set("order", order)
	}
	return q
}

func byID(id string) url.Values {
	q := url.Values{}
	q.Set("id", eq(id))
	return q
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

// FetchCatalog devuelve el catálogo en orden de definición.
func (s *Store) FetchCatalog(ctx context.Context) ([]entity.CatalogItem, error) {
	rows, err := fetchAll[catalogRow](ctx, s.c, "fetch catalog", catalogTable, selectAll("position.asc,id.asc"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.CatalogItem, len(rows))
	for i, row := range rows {
		out[i] = entity.CatalogItem(row)
	}
	return out, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// FetchMovements lee el log completo ascendente por timestamp; un log truncado es un TransportError.
func (s *Store) FetchMovements(ctx context.Context, branch string) ([]entity.MovementRecord, error) {
	q := scoped(selectAll("entry_timestamp.asc,created_at.asc,id.asc"), branch)
	rows, err := fetchAll[movementRow](ctx, s.c, "fetch movements", movementsTable, q)
	if err != nil {
		return nil, err
	}
	out := make([]entity.MovementRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toEntity()
	}
	return out, nil
}

// GetMovement obtiene un movimiento por ID; ErrNotFound si la respuesta viene vacía.
func (s *Store) GetMovement(ctx context.Context, id string) (*entity.MovementRecord, error) {
	q := byID(id)
	q.Set("select", "*")
	var rows []movementRow
	if _, err := s.c.do(ctx, "get movement", http.MethodGet, movementsTable, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("get movement %s: %w", id, domain.ErrNotFound)
	}
	m := rows[0].toEntity()
	return &m, nil
}

// InsertMovement crea el registro. El backend devuelve la fila creada (return=representation).
func (s *Store) InsertMovement(ctx context.Context, record *entity.MovementRecord) error {
	body := movementRow{
		ID:             record.ID,
		ItemName:       record.ItemName,
		BranchLocation: record.BranchLocation,
		Direction:      string(record.Direction),
		Quantity:       record.Quantity,
		EntryTimestamp: record.Timestamp.UTC(),
		ActorName:      record.ActorName,
	}
	var created []movementRow
	if _, err := s.c.do(ctx, "insert movement", http.MethodPost, movementsTable, nil, body, &created); err != nil {
		return err
	}
	if len(created) > 0 && record.ID == "" {
		record.ID = created[0].ID
	}
	return nil
}

// UpdateMovement sobrescribe dirección y cantidad; ErrNotFound si no se modificó ninguna fila.
func (s *Store) UpdateMovement(ctx context.Context, id string, patch entity.MovementPatch) error {
	body := movementPatchRow{
		Direction: string(patch.Direction),
		Quantity:  patch.Quantity,
		IsEdited:  true,
		EditedAt:  patch.EditedAt.UTC(),
	}
	var updated []movementRow
	if _, err := s.c.do(ctx, "update movement", http.MethodPatch, movementsTable, byID(id), body, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return fmt.Errorf("update movement %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteMovement elimina el registro; ErrNotFound si no existía.
func (s *Store) DeleteMovement(ctx context.Context, id string) error {
	var deleted []movementRow
	if _, err := s.c.do(ctx, "delete movement", http.MethodDelete, movementsTable, byID(id), nil, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return fmt.Errorf("delete movement %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ── Auditoría ─────────────────────────────────────────────────────────────────

// InsertEditLogEntry agrega una entrada al log de ediciones.
func (s *Store) InsertEditLogEntry(ctx context.Context, e *entity.EditLogEntry) error {
	body := editLogRow{
		ID:               e.ID,
		MovementRecordID: e.MovementRecordID,
		ItemName:         e.ItemName,
		OldDirection:     string(e.OldDirection),
		NewDirection:     string(e.NewDirection),
		OldQuantity:      e.OldQuantity,
		NewQuantity:      e.NewQuantity,
		EditedBy:         e.EditedBy,
		Branch:           e.Branch,
		EditedAt:         e.EditedAt.UTC(),
	}
	_, err := s.c.do(ctx, "insert edit log", http.MethodPost, editLogTable, nil, body, nil)
	return err
}

// InsertDeletionLogEntry agrega una entrada al log de eliminaciones.
func (s *Store) InsertDeletionLogEntry(ctx context.Context, e *entity.DeletionLogEntry) error {
	body := deletionLogRow{
		ID:                       e.ID,
		OriginalMovementRecordID: e.OriginalMovementRecordID,
		ItemName:                 e.ItemName,
		Direction:                string(e.Direction),
		Quantity:                 e.Quantity,
		OriginalTimestamp:        e.OriginalTimestamp.UTC(),
		Branch:                   e.Branch,
		ActorName:                e.ActorName,
		DeletedBy:                e.DeletedBy,
		DeletedAt:                e.DeletedAt.UTC(),
	}
	_, err := s.c.do(ctx, "insert deletion log", http.MethodPost, deleteLogTable, nil, body, nil)
	return err
}

// FetchEditLog devuelve las ediciones más recientes primero.
func (s *Store) FetchEditLog(ctx context.Context, branch string) ([]entity.EditLogEntry, error) {
	rows, err := fetchAll[editLogRow](ctx, s.c, "fetch edit log", editLogTable, scoped(selectAll("edited_at.desc,id.desc"), branch))
	if err != nil {
		return nil, err
	}
	out := make([]entity.EditLogEntry, len(rows))
	for i, row := range rows {
		out[i] = entity.EditLogEntry{
			ID:               row.ID,
			MovementRecordID: row.MovementRecordID,
			ItemName:         row.ItemName,
			OldDirection:     entity.Direction(row.OldDirection),
			NewDirection:     entity.Direction(row.NewDirection),
			OldQuantity:      row.OldQuantity,
			NewQuantity:      row.NewQuantity,
			EditedBy:         row.EditedBy,
			Branch:           row.Branch,
			EditedAt:         row.EditedAt.UTC(),
		}
	}
	return out, nil
}

// FetchDeletionLog devuelve las eliminaciones más recientes primero.
func (s *Store) FetchDeletionLog(ctx context.Context, branch string) ([]entity.DeletionLogEntry, error) {
	rows, err := fetchAll[deletionLogRow](ctx, s.c, "fetch deletion log", deleteLogTable, scoped(selectAll("deleted_at.desc,id.desc"), branch))
	if err != nil {
		return nil, err
	}
	out := make([]entity.DeletionLogEntry, len(rows))
	for i, row := range rows {
		out[i] = entity.DeletionLogEntry{
			ID:                       row.ID,
			OriginalMovementRecordID: row.OriginalMovementRecordID,
			ItemName:                 row.ItemName,
			Direction:                entity.Direction(row.Direction),
			Quantity:                 row.Quantity,
			OriginalTimestamp:        row.OriginalTimestamp.UTC(),
			Branch:                   row.Branch,
			ActorName:                row.ActorName,
			DeletedBy:                row.DeletedBy,
			DeletedAt:                row.DeletedAt.UTC(),
		}
	}
	return out, nil
}

// ── Personal y sucursales ─────────────────────────────────────────────────────

// ListEmployees lista el personal de branch, o de todas si está vacío.
func (s *Store) ListEmployees(ctx context.Context, branch string) ([]entity.Employee, error) {
	rows, err := fetchAll[employeeRow](ctx, s.c, "list employees", employeesTable, scoped(selectAll("branch_location.asc,name.asc,id.asc"), branch))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Employee, len(rows))
	for i, row := range rows {
		out[i] = entity.Employee(row)
	}
	return out, nil
}

// ListBranches devuelve el registro de sucursales.
func (s *Store) ListBranches(ctx context.Context) ([]entity.Branch, error) {
	rows, err := fetchAll[branchRow](ctx, s.c, "list branches", branchesTable, selectAll("location.asc"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Branch, len(rows))
	for i, row := range rows {
		out[i] = entity.Branch(row)
	}
	return out, nil
}

// ListSuppliers devuelve el directorio de proveedores ordenado por nombre.
func (s *Store) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	rows, err := fetchAll[supplierRow](ctx, s.c, "list suppliers", suppliersTable, selectAll("name.asc,id.asc"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Supplier, len(rows))
	for i, row := range rows {
		out[i] = entity.Supplier(row)
	}
	return out, nil
}
