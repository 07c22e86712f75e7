package dto

import (
	"time"

	"github.com/jhoicas/bundle-orders/internal/domain/entity"
)

// MessageOrderPlaced mensaje de confirmación de un pedido.
const MessageOrderPlaced = "Order placed successfully"

// PlaceOrderRequest body para POST /api/orders.
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest una línea: unidades de un kit.
type OrderItemRequest struct {
	SystemID int64 `json:"system_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"required,min=1,max=2147483647"`
}

// PlaceOrderResponse salida de POST /api/orders.
type PlaceOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID        int64               `json:"id"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID       int64 `json:"id"`
	SystemID int64 `json:"system_id"`
	Quantity int   `json:"quantity"`
}

// NewOrderResponse mapea la entidad a la salida HTTP.
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{ID: it.ID, SystemID: it.SystemID, Quantity: it.Quantity})
	}
	return OrderResponse{ID: o.ID, Items: items, CreatedAt: o.CreatedAt}
}
