package dto

import "github.com/jhoicas/bundle-orders/internal/domain/entity"

// SystemResponse kit con su composición.
type SystemResponse struct {
	ID         int64                     `json:"id"`
	Name       string                    `json:"name"`
	Components []SystemComponentResponse `json:"components"`
}

// SystemComponentResponse producto y cantidad por unidad del kit.
type SystemComponentResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// NewSystemResponse mapea la entidad a la salida HTTP.
func NewSystemResponse(s *entity.System) SystemResponse {
	comps := make([]SystemComponentResponse, 0, len(s.Components))
	for _, c := range s.Components {
		comps = append(comps, SystemComponentResponse{ProductID: c.ProductID, ProductName: c.ProductName, Quantity: c.Quantity})
	}
	return SystemResponse{ID: s.ID, Name: s.Name, Components: comps}
}
