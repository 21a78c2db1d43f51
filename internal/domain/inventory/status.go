package inventory

// Status clasificación derivada del stock. Se recalcula en cada lectura y nunca se persiste.
type Status string

const (
	StatusOutOfStock Status = "out_of_stock"
	StatusLowStock   Status = "low_stock"
	StatusInStock    Status = "in_stock"
)

// Classify es función pura de (quantity, minStock):
// 0 → sin stock; 0 < q <= min → stock bajo; resto → en stock.
func Classify(quantity, minStock int) Status {
	if quantity == 0 {
		return StatusOutOfStock
	}
	if quantity <= minStock {
		return StatusLowStock
	}
	return StatusInStock
}

// Label etiqueta visible del estado.
func (s Status) Label() string {
	switch s {
	case StatusOutOfStock:
		return "Sin stock"
	case StatusLowStock:
		return "Stock bajo"
	default:
		return "En stock"
	}
}

// ReportLabel etiqueta en mayúsculas usada en los informes.
func (s Status) ReportLabel() string {
	switch s {
	case StatusOutOfStock:
		return "SIN STOCK"
	case StatusLowStock:
		return "STOCK BAJO"
	default:
		return "EN STOCK"
	}
}

// AlertLevel nivel de alerta visual de una tarjeta de producto.
type AlertLevel string

const (
	AlertNone     AlertLevel = "none"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// Alert es crítico si no hay stock o si q <= ceil(min/2); advertencia si q <= min.
func Alert(quantity, minStock int) AlertLevel {
	half := (minStock + 1) / 2
	if quantity == 0 || quantity <= half {
		return AlertCritical
	}
	if quantity <= minStock {
		return AlertWarning
	}
	return AlertNone
}

// NeedsRestock indica si el producto cuenta como alerta en las estadísticas.
func NeedsRestock(quantity, minStock int) bool {
	return quantity <= minStock
}
