package repository

import (
	"context"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// AuditLogRepository puerto append-only para los logs de edición y eliminación.
// Los listados se devuelven del más reciente al más antiguo.
type AuditLogRepository interface {
	InsertEditLogEntry(ctx context.Context, entry *entity.EditLogEntry) error
	InsertDeletionLogEntry(ctx context.Context, entry *entity.DeletionLogEntry) error
	FetchEditLog(ctx context.Context, branch string) ([]entity.EditLogEntry, error)
	FetchDeletionLog(ctx context.Context, branch string) ([]entity.DeletionLogEntry, error)
}
