package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/bundle-orders/internal/application/dto"
	"github.com/jhoicas/bundle-orders/internal/domain"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	"github.com/jhoicas/bundle-orders/internal/domain/repository"
)

// BundleCatalog resuelve un kit a su composición de productos. Solo lectura.
type BundleCatalog struct {
	systemRepo repository.SystemRepository
}

// NewBundleCatalog construye el catálogo.
func NewBundleCatalog(systemRepo repository.SystemRepository) *BundleCatalog {
	return &BundleCatalog{systemRepo: systemRepo}
}

// Resolve devuelve el kit con sus componentes en orden de composición.
// Retorna un error que envuelve domain.ErrNotFound si el kit no existe.
func (c *BundleCatalog) Resolve(ctx context.Context, systemID int64) (*entity.System, error) {
	if systemID <= 0 {
		return nil, fmt.Errorf("system %d: %w", systemID, domain.ErrNotFound)
	}
	sys, err := c.systemRepo.GetByID(ctx, systemID)
	if err != nil {
		return nil, err
	}
	if sys == nil {
		return nil, fmt.Errorf("system %d: %w", systemID, domain.ErrNotFound)
	}
	return sys, nil
}

// Get adapta Resolve a la salida HTTP.
func (c *BundleCatalog) Get(ctx context.Context, systemID int64) (*dto.SystemResponse, error) {
	sys, err := c.Resolve(ctx, systemID)
	if err != nil {
		return nil, err
	}
	out := dto.NewSystemResponse(sys)
	return &out, nil
}
