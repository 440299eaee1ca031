package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body de POST /ventas. No lleva precios: se toman del catálogo.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"productos" validate:"required,min=1,dive"`
}

// SaleItemRequest línea pedida (producto, cantidad).
type SaleItemRequest struct {
	ProductID int64 `json:"id_producto" validate:"gt=0"`
	Quantity  int   `json:"cantidad" validate:"gt=0,lte=2147483647"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID     int64              `json:"id"`
	UserID int64              `json:"id_usuario"`
	Date   time.Time          `json:"fecha"`
	Total  decimal.Decimal    `json:"total"`
	Lines  []SaleLineResponse `json:"productos"`
}

// SaleLineResponse línea de venta con el precio unitario capturado.
type SaleLineResponse struct {
	ProductID int64           `json:"id_producto"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}
