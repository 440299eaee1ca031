package entity

import "github.com/shopspring/decimal"

// Product es un artículo del catálogo. El ID es numérico, estable y asignado externamente;
// Price es la única fuente de verdad del precio al momento de vender.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Available   bool
	Category    string
}
