package inventory

// StockStatus clasificación de un ítem según su cantidad y umbral de reorden.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "Out of Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusInStock    StockStatus = "In Stock"
)

// Classify aplica la regla uniforme: q <= 0 sin stock; 0 < q <= umbral bajo; si no, en stock.
// Con umbral 0 una cantidad 0 sigue siendo "Out of Stock".
func Classify(quantity, reorderThreshold int64) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= reorderThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
