package memory

import (
	"context"

	"github.com/jhoicas/bundle-orders/internal/domain"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	"github.com/jhoicas/bundle-orders/internal/domain/inventory"
	"github.com/jhoicas/bundle-orders/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*productRepo)(nil)
	_ repository.SystemRepository  = (*systemRepo)(nil)
	_ repository.OrderRepository   = (*orderRepo)(nil)
)

type productRepo struct{ db db }

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	r.db.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate: las transacciones ya están serializadas, no hace falta bloqueo adicional.
func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(_ context.Context, p *entity.Product) error {
	if err := r.db.fail(OpUpdateStock); err != nil {
		return err
	}
	if p.Stock < 0 {
		return domain.ErrConflict
	}
	var found bool
	err := r.db.write(func(st *state) {
		cur, ok := st.products[p.ID]
		if !ok {
			return
		}
		found = true
		cur.Stock = p.Stock
		cur.LowStockNotified = p.LowStockNotified
		cur.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = cur
	})
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	r.db.read(func(st *state) {
		ids := sortedProductIDs(st)
		for i, id := range ids {
			if i < offset {
				continue
			}
			if limit > 0 && len(list) >= limit {
				break
			}
			p := st.products[id]
			list = append(list, &p)
		}
	})
	return list, nil
}

func (r *productRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	r.db.read(func(st *state) {
		for _, id := range sortedProductIDs(st) {
			p := st.products[id]
			if !inventory.Above(p.Stock, p.LowStockThreshold()) {
				list = append(list, &p)
			}
		}
	})
	return list, nil
}

type systemRepo struct{ db db }

func (r *systemRepo) GetByID(_ context.Context, id int64) (*entity.System, error) {
	var out *entity.System
	r.db.read(func(st *state) {
		if s, ok := st.systems[id]; ok {
			s.Components = append([]entity.SystemComponent(nil), s.Components...)
			out = &s
		}
	})
	return out, nil
}

type orderRepo struct{ db db }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	if err := r.db.fail(OpCreateOrder); err != nil {
		return err
	}
	return r.db.write(func(st *state) {
		st.nextOrderID++
		o.ID = st.nextOrderID
		stored := *o
		stored.Items = nil
		st.orders[o.ID] = stored
	})
}

func (r *orderRepo) CreateItem(_ context.Context, it *entity.OrderItem) error {
	if err := r.db.fail(OpCreateItem); err != nil {
		return err
	}
	var orphan bool
	err := r.db.write(func(st *state) {
		if _, ok := st.orders[it.OrderID]; !ok {
			orphan = true
			return
		}
		st.nextItemID++
		it.ID = st.nextItemID
		st.items = append(st.items, *it)
	})
	if err != nil {
		return err
	}
	if orphan {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	var out *entity.Order
	r.db.read(func(st *state) {
		o, ok := st.orders[id]
		if !ok {
			return
		}
		for _, it := range st.items {
			if it.OrderID == id {
				o.Items = append(o.Items, it)
			}
		}
		out = &o
	})
	return out, nil
}
