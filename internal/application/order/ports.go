package order

import (
	"context"

	"github.com/jhoicas/bundle-orders/internal/application/notification"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
)

// SystemResolver resuelve kits (implementado por catalog.BundleCatalog).
type SystemResolver interface {
	Resolve(ctx context.Context, systemID int64) (*entity.System, error)
}

// AlertDispatcher recibe las alertas de stock bajo una vez confirmada la transacción.
type AlertDispatcher interface {
	Dispatch(alerts ...notification.LowStockAlert)
}
