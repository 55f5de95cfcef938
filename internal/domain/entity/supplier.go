package entity

// Supplier proveedor del directorio de la oficina central.
type Supplier struct {
	ID      string
	Name    string
	Contact string
	Phone   string
	Items   string // líneas que abastece, ej: "Writing, Paper"
	Active  bool
}
