package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleIDBase es el primer ID de venta; mantiene los IDs de ventas lejos de los IDs chicos de seed/tests.
const SaleIDBase int64 = 1001

// MaxQuantity cantidad máxima por línea; todos los almacenes la guardan como entero de 32 bits.
const MaxQuantity = 1<<31 - 1

// Sale es una venta registrada. Total y los precios unitarios de las líneas se fijan al crearla.
type Sale struct {
	ID     int64
	UserID int64
	Date   time.Time
	Total  decimal.Decimal
	Lines  []SaleLine
}

// SaleLine es una línea de venta con el precio unitario capturado del catálogo.
type SaleLine struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal = precio unitario * cantidad.
func (l SaleLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ComputeTotal suma los subtotales de las líneas.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
