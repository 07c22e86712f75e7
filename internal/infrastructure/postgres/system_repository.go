package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bundle-orders/internal/domain/entity"
	"github.com/jhoicas/bundle-orders/internal/domain/repository"
)

var _ repository.SystemRepository = (*SystemRepo)(nil)

// SystemRepo lectura de kits y su composición (systems + product_system).
type SystemRepo struct {
	q Querier
}

// NewSystemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSystemRepository(q Querier) *SystemRepo {
	return &SystemRepo{q: q}
}

// GetByID obtiene el kit y sus componentes en orden de alta en product_system.
func (r *SystemRepo) GetByID(ctx context.Context, id int64) (*entity.System, error) {
	var s entity.System
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM systems WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get system: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT ps.system_id, ps.product_id, p.name, ps.quantity
		FROM product_system ps
		JOIN products p ON p.id = ps.product_id
		WHERE ps.system_id = $1
		ORDER BY ps.created_at, ps.product_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list system components: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.SystemComponent
		if err := rows.Scan(&c.SystemID, &c.ProductID, &c.ProductName, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan system component: %w", err)
		}
		s.Components = append(s.Components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list system components: %w", err)
	}
	return &s, nil
}
