package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bundle-orders/internal/domain/entity"
)

// ReplenishRequest body para POST /api/products/:id/replenish.
type ReplenishRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=2147483647"`
}

// ProductStockResponse estado de stock de un producto.
type ProductStockResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	InitialStock     int             `json:"initial_stock"`
	Stock            int             `json:"stock"`
	Threshold        decimal.Decimal `json:"threshold"`
	LowStockNotified bool            `json:"low_stock_notified"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductStockResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// NewProductStockResponse mapea la entidad a la salida HTTP.
func NewProductStockResponse(p *entity.Product) ProductStockResponse {
	return ProductStockResponse{
		ID:               p.ID,
		Name:             p.Name,
		InitialStock:     p.InitialStock,
		Stock:            p.Stock,
		Threshold:        p.LowStockThreshold(),
		LowStockNotified: p.LowStockNotified,
		UpdatedAt:        p.UpdatedAt,
	}
}
