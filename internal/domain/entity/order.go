package entity

import "time"

// Order agrega de pedido. Se crea una sola vez por checkout exitoso; nunca se persiste parcialmente.
type Order struct {
	ID        int64
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem línea de pedido: Quantity unidades de un System. Inmutable una vez creada.
type OrderItem struct {
	ID        int64
	OrderID   int64
	SystemID  int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
