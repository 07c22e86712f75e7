package repository

import (
	"context"

	"github.com/jhoicas/bundle-orders/internal/domain/entity"
)

// OrderRepository puerto de persistencia para Order y OrderItem.
type OrderRepository interface {
	// Create inserta la cabecera y asigna ID.
	Create(ctx context.Context, order *entity.Order) error
	// CreateItem inserta una línea y asigna ID.
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	// GetByID devuelve el pedido con sus líneas; (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
}
