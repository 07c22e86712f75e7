package repository

import (
	"context"

	"github.com/jhoicas/bundle-orders/internal/domain/entity"
)

// SystemRepository puerto de lectura para kits y su composición (product_system).
type SystemRepository interface {
	// GetByID devuelve el kit con Components en orden de composición; (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.System, error)
}
