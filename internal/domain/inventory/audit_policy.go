package inventory

// AuditPolicy define el resultado de una operación cuando falla la escritura de su entrada de auditoría.
type AuditPolicy int

const (
	// AuditFailClosed el fallo del log hace fallar la operación.
	AuditFailClosed AuditPolicy = iota
	// AuditFailOpen la operación se mantiene y el fallo se informa como advertencia.
	AuditFailOpen
)

func (p AuditPolicy) String() string {
	switch p {
	case AuditFailClosed:
		return "fail_closed"
	case AuditFailOpen:
		return "fail_open"
	default:
		return "unknown"
	}
}
