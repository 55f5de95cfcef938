package entity

// Branch representa una sucursal o bodega del distribuidor.
type Branch struct {
	ID       string
	Location string // clave de partición de los movimientos
	BOECode  string
}
