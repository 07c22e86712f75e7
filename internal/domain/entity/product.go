package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bundle-orders/internal/domain"
	"github.com/jhoicas/bundle-orders/internal/domain/inventory"
)

// Product representa una unidad de inventario.
// Stock nunca es negativo; InitialStock es la referencia fija para el umbral del 20%.
// LowStockNotified es la única memoria de "ya se notificó desde la última recuperación".
type Product struct {
	ID               int64
	Name             string
	InitialStock     int
	Stock            int
	LowStockNotified bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LowStockThreshold devuelve InitialStock * 0.2 (se recalcula en cada llamada).
func (p *Product) LowStockThreshold() decimal.Decimal {
	return inventory.Threshold(p.InitialStock)
}

// IsLowStock indica si el stock actual está en o bajo el umbral.
func (p *Product) IsLowStock() bool {
	return !inventory.Above(p.Stock, p.LowStockThreshold())
}

// ReduceStock descuenta quantity del stock. Devuelve crossed=true cuando el descuento cruza el
// umbral hacia abajo y aún no se había notificado; en ese caso el flag queda en true y el caller
// debe emitir la notificación. Con stock insuficiente no modifica nada.
func (p *Product) ReduceStock(quantity int) (crossed bool, err error) {
	if quantity < 0 {
		return false, domain.NewValidationError("quantity", "must not be negative")
	}
	if p.Stock < quantity {
		return false, &domain.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Requested:   quantity,
			Available:   p.Stock,
		}
	}

	previous := p.Stock
	p.Stock -= quantity
	threshold := p.LowStockThreshold()

	// Flag obsoleto: el stock sigue sobre el umbral pero quedó marcado como notificado.
	if inventory.Above(p.Stock, threshold) && p.LowStockNotified {
		p.LowStockNotified = false
	}

	if inventory.CrossedDown(previous, p.Stock, threshold) && !p.LowStockNotified {
		p.LowStockNotified = true
		return true, nil
	}
	return false, nil
}

// ReplenishStock suma quantity al stock. Si cruza el umbral hacia arriba limpia el flag.
// Nunca genera notificación.
func (p *Product) ReplenishStock(quantity int) error {
	if quantity < 0 {
		return domain.NewValidationError("quantity", "must not be negative")
	}
	if quantity > inventory.MaxStock-p.Stock {
		return domain.NewValidationError("quantity", fmt.Sprintf("stock would exceed %d", inventory.MaxStock))
	}
	previous := p.Stock
	p.Stock += quantity
	if inventory.CrossedUp(previous, p.Stock, p.LowStockThreshold()) && p.LowStockNotified {
		p.LowStockNotified = false
	}
	return nil
}
