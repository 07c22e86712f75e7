package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bundle-orders/internal/application/dto"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	"github.com/jhoicas/bundle-orders/internal/domain/inventory"
	"github.com/jhoicas/bundle-orders/internal/domain/repository"
)

// ReplenishmentUseCase repone stock de productos y genera la lista de reposición.
type ReplenishmentUseCase struct {
	txRunner    TxRunner
	ledger      *Ledger
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(txRunner TxRunner, ledger *Ledger, productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		productRepo: productRepo,
	}
}

// Replenish suma quantity al stock del producto en su propia transacción.
// Si el stock vuelve sobre el umbral limpia el flag de notificación; nunca notifica.
func (uc *ReplenishmentUseCase) Replenish(ctx context.Context, productID int64, quantity int) (*dto.ProductStockResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.OrderRepository) error {
		p, err := uc.ledger.ReplenishStock(ctx, productRepo, productID, quantity)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductStockResponse(updated)
	return &out, nil
}

// List devuelve el estado de stock de los productos (paginado).
func (uc *ReplenishmentUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductStockResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductStockResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GenerateReplenishmentList devuelve los productos en o bajo el umbral con la cantidad sugerida
// para volver al stock inicial, ordenados del más crítico (menor % de llenado) al menos crítico.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	hundred := decimal.NewFromInt(100)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		fill := decimal.Zero
		if p.InitialStock > 0 {
			fill = decimal.NewFromInt(int64(p.Stock)).
				Div(decimal.NewFromInt(int64(p.InitialStock))).
				Mul(hundred).Round(2)
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			ProductName:       p.Name,
			CurrentStock:      p.Stock,
			InitialStock:      p.InitialStock,
			Threshold:         p.LowStockThreshold(),
			FillPct:           fill,
			SuggestedOrderQty: inventory.RefillQuantity(p.Stock, p.InitialStock),
			LowStockNotified:  p.LowStockNotified,
		})
	}

	// Menor % de llenado primero; luego mayor déficit absoluto; finalmente ID para que sea determinista.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.FillPct.Equal(b.FillPct) {
			return a.FillPct.LessThan(b.FillPct)
		}
		if a.SuggestedOrderQty != b.SuggestedOrderQty {
			return a.SuggestedOrderQty > b.SuggestedOrderQty
		}
		return a.ProductID < b.ProductID
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
