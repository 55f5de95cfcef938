package entity

// Employee integrante del personal de una sucursal.
type Employee struct {
	ID             string
	Name           string
	Role           string // cargo, ej: "Stock Controller"
	Initials       string
	BranchLocation string
}
