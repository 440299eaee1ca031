package dto

import "github.com/shopspring/decimal"

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"desc"`
	Price       decimal.Decimal `json:"precio"`
	Image       string          `json:"imagen"`
	Available   bool            `json:"disponible"`
	Category    string          `json:"tipo"`
}

// UpdateProductRequest entrada de PUT /productos/:id; solo se modifican los campos presentes.
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"desc"`
	Price       *decimal.Decimal `json:"precio"`
	Image       *string          `json:"imagen"`
	Available   *bool            `json:"disponible"`
	Category    *string          `json:"tipo"`
}
