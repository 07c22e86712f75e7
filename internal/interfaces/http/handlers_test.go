package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bundle-orders/internal/application/catalog"
	"github.com/jhoicas/bundle-orders/internal/application/dto"
	"github.com/jhoicas/bundle-orders/internal/application/inventory"
	"github.com/jhoicas/bundle-orders/internal/application/notification"
	"github.com/jhoicas/bundle-orders/internal/application/order"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	"github.com/jhoicas/bundle-orders/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bundle-orders/internal/interfaces/http"
	"github.com/jhoicas/bundle-orders/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type captureDispatcher struct {
	alerts []notification.LowStockAlert
}

func (d *captureDispatcher) Dispatch(alerts ...notification.LowStockAlert) {
	d.alerts = append(d.alerts, alerts...)
}

type fixture struct {
	app    *fiber.App
	store  *memory.Store
	alerts *captureDispatcher
	panel  entity.Product
	inv    entity.Product
	opt    entity.Product
	system entity.System
}

// newFixture arma la API completa sobre el almacén en memoria:
// Solar panel 1000, Inverter 100, Optimizer 500; kit 1 = 12 / 1 / 12.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{store: store, alerts: &captureDispatcher{}}
	f.panel = store.AddProduct(entity.Product{Name: "Solar panel", InitialStock: 1000, Stock: 1000})
	f.inv = store.AddProduct(entity.Product{Name: "Inverter", InitialStock: 100, Stock: 100})
	f.opt = store.AddProduct(entity.Product{Name: "Optimizer", InitialStock: 500, Stock: 500})
	f.system = store.AddSystem("Basic Solar System",
		entity.SystemComponent{ProductID: f.panel.ID, Quantity: 12},
		entity.SystemComponent{ProductID: f.inv.ID, Quantity: 1},
		entity.SystemComponent{ProductID: f.opt.ID, Quantity: 12},
	)

	ledger := inventory.NewLedger()
	cat := catalog.NewBundleCatalog(store.Systems())
	f.app = fiber.New()
	apphttp.Router(f.app, apphttp.RouterDeps{
		PlaceOrder:    order.NewPlaceOrderUseCase(store, cat, ledger, f.alerts, store.Orders()),
		Catalog:       cat,
		Replenishment: inventory.NewReplenishmentUseCase(store, ledger, store.Products()),
	})
	return f
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "respuesta no es JSON: %s", raw)
	}
	return resp.StatusCode, out
}

func orderBody(systemID int64, qty int) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{Items: []dto.OrderItemRequest{{SystemID: systemID, Quantity: qty}}}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/orders
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_201(t *testing.T) {
	f := newFixture(t)

	status, body := doJSON(t, f.app, http.MethodPost, "/api/orders", orderBody(f.system.ID, 2))

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Order placed successfully", body["message"])
	assert.EqualValues(t, 1, body["order_id"])
	assert.Equal(t, 976, f.store.Product(f.panel.ID).Stock)
	assert.Equal(t, 98, f.store.Product(f.inv.ID).Stock)
	assert.Equal(t, 476, f.store.Product(f.opt.ID).Stock)
}

func TestCreateOrder_StockInsuficiente400(t *testing.T) {
	f := newFixture(t)
	f.store.SetProduct(entity.Product{ID: f.inv.ID, Name: "Inverter", InitialStock: 100, Stock: 5, LowStockNotified: true})

	status, body := doJSON(t, f.app, http.MethodPost, "/api/orders", orderBody(f.system.ID, 6))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Insufficient stock for product Inverter", body["error"])
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	// Rollback: el panel se procesó antes y no debe quedar descontado
	assert.Equal(t, 1000, f.store.Product(f.panel.ID).Stock)
	assert.Equal(t, 0, f.store.OrderCount())
	assert.Empty(t, f.alerts.alerts)
}

func TestCreateOrder_Validacion400(t *testing.T) {
	cases := []struct {
		name string
		body any
	}{
		{"sin items", dto.PlaceOrderRequest{}},
		{"cantidad cero", map[string]any{"items": []map[string]any{{"system_id": 1, "quantity": 0}}}},
		{"cantidad negativa", map[string]any{"items": []map[string]any{{"system_id": 1, "quantity": -3}}}},
		{"sin system_id", map[string]any{"items": []map[string]any{{"quantity": 1}}}},
		{"cantidad sobre el máximo", map[string]any{"items": []map[string]any{{"system_id": 1, "quantity": int64(1) << 62}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			status, body := doJSON(t, f.app, http.MethodPost, "/api/orders", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "VALIDATION", body["code"])
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, 0, f.store.OrderCount())
		})
	}
}

func TestCreateOrder_KitInexistente400(t *testing.T) {
	f := newFixture(t)

	status, body := doJSON(t, f.app, http.MethodPost, "/api/orders", orderBody(99, 1))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["error"], "system 99 does not exist")
}

func TestCreateOrder_BodyInvalido400(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrder_ErrorInesperado500(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn(memory.OpUpdateStock, assert.AnError)

	status, body := doJSON(t, f.app, http.MethodPost, "/api/orders", orderBody(f.system.ID, 1))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, 0, f.store.OrderCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder(t *testing.T) {
	f := newFixture(t)
	status, _ := doJSON(t, f.app, http.MethodPost, "/api/orders", orderBody(f.system.ID, 3))
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, f.app, http.MethodGet, "/api/orders/1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].(map[string]any)["quantity"])

	status, body = doJSON(t, f.app, http.MethodGet, "/api/orders/42", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestGetSystem(t *testing.T) {
	f := newFixture(t)

	status, body := doJSON(t, f.app, http.MethodGet, "/api/systems/1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Basic Solar System", body["name"])

	status, _ = doJSON(t, f.app, http.MethodGet, "/api/systems/7", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = doJSON(t, f.app, http.MethodGet, "/api/systems/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestReplenish_RearmaAlerta(t *testing.T) {
	f := newFixture(t)
	f.store.SetProduct(entity.Product{ID: f.inv.ID, Name: "Inverter", InitialStock: 100, Stock: 10, LowStockNotified: true})

	status, body := doJSON(t, f.app, http.MethodPost, "/api/products/2/replenish", dto.ReplenishRequest{Quantity: 50})

	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 60, body["stock"])
	assert.Equal(t, false, body["low_stock_notified"])
	assert.False(t, f.store.Product(f.inv.ID).LowStockNotified)
}

func TestReplenish_ProductoInexistente404(t *testing.T) {
	f := newFixture(t)

	status, _ := doJSON(t, f.app, http.MethodPost, "/api/products/99/replenish", dto.ReplenishRequest{Quantity: 5})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestReplenish_CantidadNegativa400(t *testing.T) {
	f := newFixture(t)

	status, body := doJSON(t, f.app, http.MethodPost, "/api/products/1/replenish", map[string]any{"quantity": -1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, 1000, f.store.Product(f.panel.ID).Stock)
}

func TestReplenish_SobreElMaximo400(t *testing.T) {
	f := newFixture(t)

	status, body := doJSON(t, f.app, http.MethodPost, "/api/products/1/replenish", map[string]any{"quantity": int64(1) << 40})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	// Dentro del rango del DTO pero el stock resultante excedería el máximo
	status, body = doJSON(t, f.app, http.MethodPost, "/api/products/1/replenish", dto.ReplenishRequest{Quantity: 2147483647})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, 1000, f.store.Product(f.panel.ID).Stock)
}

func TestListProductsYReplenishmentList(t *testing.T) {
	f := newFixture(t)
	f.store.SetProduct(entity.Product{ID: f.opt.ID, Name: "Optimizer", InitialStock: 500, Stock: 90, LowStockNotified: true})

	status, body := doJSON(t, f.app, http.MethodGet, "/api/products?limit=2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)

	status, body = doJSON(t, f.app, http.MethodGet, "/api/inventory/replenishment-list", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])
	list := body["replenishments"].([]any)
	first := list[0].(map[string]any)
	assert.Equal(t, "Optimizer", first["product_name"])
	assert.EqualValues(t, 410, first["suggested_order_qty"])

}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http", line["component"])
	assert.Equal(t, "/ping", line["path"])
	assert.EqualValues(t, 204, line["status"])
}
