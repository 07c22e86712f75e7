package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxStock tope de stock y de cantidades por movimiento (columnas INTEGER en PostgreSQL).
const MaxStock = math.MaxInt32

// LowStockRatio fracción del stock inicial bajo la cual un producto se considera en stock bajo.
var LowStockRatio = decimal.New(2, -1)

// Threshold devuelve el umbral de stock bajo: StockInicial * 0.2.
// Se calcula en decimal para que 1000 * 0.2 sea exactamente 200.
func Threshold(initialStock int) decimal.Decimal {
	return decimal.NewFromInt(int64(initialStock)).Mul(LowStockRatio)
}

// Above indica si stock está estrictamente por encima del umbral.
func Above(stock int, threshold decimal.Decimal) bool {
	return decimal.NewFromInt(int64(stock)).GreaterThan(threshold)
}

// CrossedDown indica una transición de arriba del umbral a igual o por debajo de él.
func CrossedDown(previous, current int, threshold decimal.Decimal) bool {
	return Above(previous, threshold) && !Above(current, threshold)
}

// CrossedUp indica una transición de igual o por debajo del umbral a estrictamente arriba.
func CrossedUp(previous, current int, threshold decimal.Decimal) bool {
	return !Above(previous, threshold) && Above(current, threshold)
}

// RefillQuantity cantidad necesaria para volver al stock inicial (0 si ya está en o sobre él).
func RefillQuantity(stock, initialStock int) int {
	if stock >= initialStock {
		return 0
	}
	return initialStock - stock
}
