package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/bundle-orders/internal/domain"
	"github.com/jhoicas/bundle-orders/internal/domain/inventory"
)

// System representa un kit (bundle) compuesto por cantidades fijas de varios productos.
// La composición es inmutable una vez creada.
type System struct {
	ID         int64
	Name       string
	Components []SystemComponent // en orden de composición
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SystemComponent fila de la tabla product_system: cantidad del producto por unidad del kit.
type SystemComponent struct {
	SystemID    int64
	ProductID   int64
	ProductName string
	Quantity    int
}

// RequiredQuantity cantidad total del producto para units unidades del kit.
// Retorna *domain.ValidationError si el total supera inventory.MaxStock.
func (c SystemComponent) RequiredQuantity(units int) (int, error) {
	if units < 0 {
		return 0, domain.NewValidationError("quantity", "must not be negative")
	}
	if c.Quantity > 0 && units > inventory.MaxStock/c.Quantity {
		return 0, domain.NewValidationError("quantity",
			fmt.Sprintf("requires more than %d units of product %s", inventory.MaxStock, c.ProductName))
	}
	return c.Quantity * units, nil
}
