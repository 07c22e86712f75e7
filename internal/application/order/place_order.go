package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/bundle-orders/internal/application/dto"
	"github.com/jhoicas/bundle-orders/internal/application/inventory"
	"github.com/jhoicas/bundle-orders/internal/application/notification"
	"github.com/jhoicas/bundle-orders/internal/domain"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	domaininv "github.com/jhoicas/bundle-orders/internal/domain/inventory"
	"github.com/jhoicas/bundle-orders/internal/domain/repository"
)

// PlaceOrderUseCase crea un pedido de kits y descuenta el stock de cada producto en una sola transacción.
type PlaceOrderUseCase struct {
	txRunner  inventory.TxRunner
	catalog   SystemResolver
	ledger    *inventory.Ledger
	alerts    AlertDispatcher
	orderRepo repository.OrderRepository
	now       func() time.Time
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(
	txRunner inventory.TxRunner,
	catalog SystemResolver,
	ledger *inventory.Ledger,
	alerts AlertDispatcher,
	orderRepo repository.OrderRepository,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		txRunner:  txRunner,
		catalog:   catalog,
		ledger:    ledger,
		alerts:    alerts,
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

// PlaceOrder valida el request (fuera de la tx), abre la transacción, crea el pedido y sus líneas
// y descuenta el stock en orden de entrada. Cualquier error hace Rollback completo: no queda
// pedido, ni líneas, ni cambios de stock, ni alertas. Las alertas se despachan solo tras el Commit.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, in dto.PlaceOrderRequest) (*entity.Order, error) {
	systems, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	outbox := notification.NewOutbox()
	var order *entity.Order

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		o := &entity.Order{CreatedAt: now, UpdatedAt: now}
		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}

		for i, item := range in.Items {
			sys := systems[i]
			line := &entity.OrderItem{
				OrderID:   o.ID,
				SystemID:  sys.ID,
				Quantity:  item.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := orderRepo.CreateItem(ctx, line); err != nil {
				return err
			}
			o.Items = append(o.Items, *line)

			// Descontar cada producto del kit en orden de composición
			for _, comp := range sys.Components {
				needed, err := comp.RequiredQuantity(item.Quantity)
				if err != nil {
					return err
				}
				if _, err := uc.ledger.ReduceStock(ctx, productRepo, outbox, comp.ProductID, needed); err != nil {
					return err
				}
			}
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outbox.Len() > 0 {
		uc.alerts.Dispatch(outbox.Drain()...)
	}
	return order, nil
}

// validate comprueba que haya líneas, cantidades >= 1 y que cada kit exista.
// Devuelve los kits resueltos en el mismo orden que in.Items (la composición es inmutable).
func (uc *PlaceOrderUseCase) validate(ctx context.Context, in dto.PlaceOrderRequest) ([]*entity.System, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "at least one item is required")
	}
	systems := make([]*entity.System, len(in.Items))
	for i, item := range in.Items {
		field := fmt.Sprintf("items.%d.quantity", i)
		if item.Quantity < 1 {
			return nil, domain.NewValidationError(field, "must be at least 1")
		}
		if item.Quantity > domaininv.MaxStock {
			return nil, domain.NewValidationError(field, fmt.Sprintf("must be at most %d", domaininv.MaxStock))
		}
		sys, err := uc.catalog.Resolve(ctx, item.SystemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &domain.ValidationError{
					Field:   fmt.Sprintf("items.%d.system_id", i),
					Message: fmt.Sprintf("system %d does not exist", item.SystemID),
					Err:     err,
				}
			}
			return nil, err
		}
		for _, comp := range sys.Components {
			if _, err := comp.RequiredQuantity(item.Quantity); err != nil {
				var vErr *domain.ValidationError
				if errors.As(err, &vErr) {
					return nil, domain.NewValidationError(field, vErr.Message)
				}
				return nil, err
			}
		}
		systems[i] = sys
	}
	return systems, nil
}

// GetByID devuelve un pedido con sus líneas.
func (uc *PlaceOrderUseCase) GetByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	out := dto.NewOrderResponse(o)
	return &out, nil
}
