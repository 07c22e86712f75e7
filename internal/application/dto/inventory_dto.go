package dto

import "github.com/shopspring/decimal"

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo el umbral del 20%.
type ReplenishmentSuggestionDTO struct {
	ProductID         int64           `json:"product_id"`
	ProductName       string          `json:"product_name"`
	CurrentStock      int             `json:"current_stock"`
	InitialStock      int             `json:"initial_stock"`
	Threshold         decimal.Decimal `json:"threshold"`
	FillPct           decimal.Decimal `json:"fill_pct"`            // Stock / InitialStock * 100
	SuggestedOrderQty int             `json:"suggested_order_qty"` // InitialStock - CurrentStock
	LowStockNotified  bool            `json:"low_stock_notified"`
	Priority          int             `json:"priority"` // 1 = más urgente
}
