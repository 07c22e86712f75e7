package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bundle-orders/internal/application/notification"
	"github.com/jhoicas/bundle-orders/internal/domain"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	"github.com/jhoicas/bundle-orders/internal/domain/repository"
)

// Ledger aplica movimientos de stock dentro de la transacción del caller:
// bloquea la fila (SELECT FOR UPDATE), muta el producto, persiste y publica la alerta en el outbox.
type Ledger struct {
	now func() time.Time
}

// NewLedger construye el ledger.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// ReduceStock descuenta quantity del producto. Con stock insuficiente retorna
// *domain.InsufficientStockError sin modificar nada; el caller debe abortar la transacción.
func (l *Ledger) ReduceStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	outbox *notification.Outbox,
	productID int64,
	quantity int,
) (*entity.Product, error) {
	product, err := lockProduct(ctx, productRepo, productID)
	if err != nil {
		return nil, err
	}
	crossed, err := product.ReduceStock(quantity)
	if err != nil {
		return nil, err
	}
	now := l.now()
	product.UpdatedAt = now
	if err := productRepo.UpdateStock(ctx, product); err != nil {
		return nil, err
	}
	if crossed {
		outbox.Publish(notification.NewLowStockAlert(product, now))
	}
	return product, nil
}

// ReplenishStock suma quantity al producto. Nunca publica alertas.
func (l *Ledger) ReplenishStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	productID int64,
	quantity int,
) (*entity.Product, error) {
	product, err := lockProduct(ctx, productRepo, productID)
	if err != nil {
		return nil, err
	}
	if err := product.ReplenishStock(quantity); err != nil {
		return nil, err
	}
	product.UpdatedAt = l.now()
	if err := productRepo.UpdateStock(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func lockProduct(ctx context.Context, productRepo repository.ProductRepository, id int64) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return product, nil
}
