package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrTransport          = errors.New("backend no disponible o petición rechazada")
	ErrAuditLogNotWritten = errors.New("no se pudo registrar la entrada de auditoría")
)

// TransportError representa un fallo del almacenamiento remoto (red, HTTP no-2xx, error de BD).
// errors.Is(err, ErrTransport) es verdadero para cualquier TransportError.
type TransportError struct {
	Op  string // operación del puerto, ej: "fetch movements"
	Err error
}

// NewTransportError envuelve err como fallo de transporte de la operación op.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, ErrTransport.Error())
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrTransport).
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
