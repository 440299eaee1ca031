package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ReceiptLine línea del comprobante con el nombre actual del producto.
type ReceiptLine struct {
	entity.SaleLine
	ProductName string
	Subtotal    decimal.Decimal
}

// ReceiptGenerator genera el comprobante PDF de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, customer *entity.User, lines []ReceiptLine) ([]byte, error)
}
