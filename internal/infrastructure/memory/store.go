// Package memory implementa los repositorios sobre un almacén en memoria con transacciones
// serializadas: cada Run trabaja sobre una copia del estado que solo se publica en el Commit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/bundle-orders/internal/application/inventory"
	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	"github.com/jhoicas/bundle-orders/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Operaciones en las que se puede inyectar un fallo con FailOn.
const (
	OpUpdateStock = "product.update_stock"
	OpCreateOrder = "order.create"
	OpCreateItem  = "order.create_item"
)

type state struct {
	products map[int64]entity.Product
	systems  map[int64]entity.System
	orders   map[int64]entity.Order
	items    []entity.OrderItem

	nextProductID int64
	nextSystemID  int64
	nextOrderID   int64
	nextItemID    int64
}

func newState() *state {
	return &state{
		products: make(map[int64]entity.Product),
		systems:  make(map[int64]entity.System),
		orders:   make(map[int64]entity.Order),
	}
}

func (s *state) clone() *state {
	c := *s
	c.products = make(map[int64]entity.Product, len(s.products))
	for k, v := range s.products {
		c.products[k] = v
	}
	c.orders = make(map[int64]entity.Order, len(s.orders))
	for k, v := range s.orders {
		c.orders[k] = v
	}
	// systems es inmutable; se comparte
	c.items = append([]entity.OrderItem(nil), s.items...)
	return &c
}

// Store almacén en memoria. Las transacciones se serializan (una a la vez).
type Store struct {
	txMu sync.Mutex   // serializa transacciones completas
	mu   sync.RWMutex // protege st y failures
	st   *state

	failures map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), failures: make(map[string]error)}
}

// db acceso al estado, con o sin bloqueo según sea el almacén base o una tx.
type db interface {
	read(fn func(st *state))
	write(fn func(st *state)) error
	fail(op string) error
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
	return nil
}

func (s *Store) fail(op string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[op]
}

// FailOn hace que la operación op retorne err (nil la restablece).
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

type txView struct {
	store *Store
	st    *state
}

func (t *txView) read(fn func(st *state))        { fn(t.st) }
func (t *txView) write(fn func(st *state)) error { fn(t.st); return nil }
func (t *txView) fail(op string) error           { return t.store.fail(op) }

// Run ejecuta fn sobre una copia del estado. Commit publica la copia; cualquier error la descarta.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	tx := &txView{store: s, st: s.st.clone()}
	s.mu.RUnlock()

	if err := fn(&productRepo{db: tx}, &orderRepo{db: tx}); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = tx.st
	s.mu.Unlock()
	return nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &productRepo{db: s} }

// Systems repositorio de kits.
func (s *Store) Systems() repository.SystemRepository { return &systemRepo{db: s} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{db: s} }

// AddProduct inserta un producto y devuelve la copia con ID asignado.
func (s *Store) AddProduct(p entity.Product) entity.Product {
	_ = s.write(func(st *state) {
		if p.ID == 0 {
			st.nextProductID++
			p.ID = st.nextProductID
		} else if p.ID > st.nextProductID {
			st.nextProductID = p.ID
		}
		st.products[p.ID] = p
	})
	return p
}

// SetProduct sobrescribe el estado de un producto existente.
func (s *Store) SetProduct(p entity.Product) {
	_ = s.write(func(st *state) { st.products[p.ID] = p })
}

// Product devuelve una copia del producto (cero si no existe).
func (s *Store) Product(id int64) entity.Product {
	var p entity.Product
	s.read(func(st *state) { p = st.products[id] })
	return p
}

// AddSystem inserta un kit; completa ProductName y SystemID de cada componente.
func (s *Store) AddSystem(name string, components ...entity.SystemComponent) entity.System {
	var sys entity.System
	_ = s.write(func(st *state) {
		st.nextSystemID++
		sys = entity.System{ID: st.nextSystemID, Name: name}
		for _, c := range components {
			c.SystemID = sys.ID
			if p, ok := st.products[c.ProductID]; ok {
				c.ProductName = p.Name
			}
			sys.Components = append(sys.Components, c)
		}
		st.systems[sys.ID] = sys
	})
	return sys
}

// OrderCount número de pedidos confirmados.
func (s *Store) OrderCount() int {
	var n int
	s.read(func(st *state) { n = len(st.orders) })
	return n
}

// OrderItemCount número de líneas confirmadas.
func (s *Store) OrderItemCount() int {
	var n int
	s.read(func(st *state) { n = len(st.items) })
	return n
}

func sortedProductIDs(st *state) []int64 {
	ids := make([]int64, 0, len(st.products))
	for id := range st.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
