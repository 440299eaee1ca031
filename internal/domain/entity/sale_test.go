package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSale_ComputeTotal(t *testing.T) {
	s := Sale{Lines: []SaleLine{
		{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
		{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("0.20")},
	}}
	// 0.1*3 + 0.2 en float daría 0.5000000000000001
	assert.True(t, s.ComputeTotal().Equal(decimal.RequireFromString("0.50")), s.ComputeTotal().String())
}

func TestSale_ComputeTotalVacia(t *testing.T) {
	assert.True(t, (&Sale{}).ComputeTotal().IsZero())
}
