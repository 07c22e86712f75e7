package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bundle-orders/internal/domain/entity"
)

// Notifier gateway externo que entrega una alerta de stock bajo (mail, log, ...).
// Es fire-and-forget para el núcleo: su error nunca afecta una transacción.
type Notifier interface {
	NotifyLowStock(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert intención de notificación generada al cruzar el umbral hacia abajo.
type LowStockAlert struct {
	ID           string
	ProductID    int64
	ProductName  string
	CurrentStock int
	Threshold    decimal.Decimal
	RaisedAt     time.Time
}

// NewLowStockAlert construye la alerta con el estado del producto tras el descuento.
func NewLowStockAlert(p *entity.Product, now time.Time) LowStockAlert {
	return LowStockAlert{
		ID:           uuid.New().String(),
		ProductID:    p.ID,
		ProductName:  p.Name,
		CurrentStock: p.Stock,
		Threshold:    p.LowStockThreshold(),
		RaisedAt:     now,
	}
}
