package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bundle-orders/internal/application/dto"
	"github.com/jhoicas/bundle-orders/internal/application/inventory"
	"github.com/jhoicas/bundle-orders/internal/domain"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	"github.com/jhoicas/bundle-orders/internal/infrastructure/memory"
)

func newReplenishmentUC(store *memory.Store) *inventory.ReplenishmentUseCase {
	return inventory.NewReplenishmentUseCase(store, inventory.NewLedger(), store.Products())
}

func TestReplenish_LimpiaFlagAlSuperarUmbral(t *testing.T) {
	store := memory.NewStore()
	p := store.AddProduct(entity.Product{Name: "Solar panel", InitialStock: 1000, Stock: 90, LowStockNotified: true})
	uc := newReplenishmentUC(store)

	out, err := uc.Replenish(context.Background(), p.ID, 310)
	require.NoError(t, err)
	assert.Equal(t, 400, out.Stock)
	assert.False(t, out.LowStockNotified)
	assert.Equal(t, "200", out.Threshold.String())

	saved := store.Product(p.ID)
	assert.Equal(t, 400, saved.Stock)
	assert.False(t, saved.LowStockNotified)
}

func TestReplenish_CantidadNegativaNoModifica(t *testing.T) {
	store := memory.NewStore()
	p := store.AddProduct(entity.Product{Name: "Solar panel", InitialStock: 1000, Stock: 90, LowStockNotified: true})
	uc := newReplenishmentUC(store)

	_, err := uc.Replenish(context.Background(), p.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 90, store.Product(p.ID).Stock)
}

func TestList_Paginado(t *testing.T) {
	store := memory.NewStore()
	for _, name := range []string{"Solar panel", "Inverter", "Optimizer"} {
		store.AddProduct(entity.Product{Name: name, InitialStock: 100, Stock: 100})
	}
	uc := newReplenishmentUC(store)

	out, err := uc.List(context.Background(), dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Inverter", out.Items[0].Name)
	assert.Equal(t, "Optimizer", out.Items[1].Name)
	assert.Equal(t, 2, out.Page.Limit)

	out, err = uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 20, out.Page.Limit, "límite por defecto")
}

func TestGenerateReplenishmentList_OrdenPorCriticidad(t *testing.T) {
	store := memory.NewStore()
	store.AddProduct(entity.Product{Name: "Solar panel", InitialStock: 1000, Stock: 150})
	store.AddProduct(entity.Product{Name: "Inverter", InitialStock: 100, Stock: 5, LowStockNotified: true})
	store.AddProduct(entity.Product{Name: "Optimizer", InitialStock: 500, Stock: 400}) // sobre el umbral
	store.AddProduct(entity.Product{Name: "Cable", InitialStock: 200, Stock: 10})
	uc := newReplenishmentUC(store)

	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Cable", list[0].ProductName, "mismo % que Inverter pero mayor déficit")
	assert.Equal(t, 190, list[0].SuggestedOrderQty)
	assert.Equal(t, 1, list[0].Priority)

	assert.Equal(t, "Inverter", list[1].ProductName)
	assert.Equal(t, 95, list[1].SuggestedOrderQty)
	assert.True(t, list[1].LowStockNotified)

	assert.Equal(t, "Solar panel", list[2].ProductName)
	assert.Equal(t, "15", list[2].FillPct.String())
	assert.Equal(t, 850, list[2].SuggestedOrderQty)
	assert.Equal(t, 3, list[2].Priority)
}

func TestGenerateReplenishmentList_Vacia(t *testing.T) {
	store := memory.NewStore()
	store.AddProduct(entity.Product{Name: "Solar panel", InitialStock: 1000, Stock: 1000})

	list, err := newReplenishmentUC(store).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
