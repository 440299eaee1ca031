package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

func TestSaleDoc_ConservaDecimales(t *testing.T) {
	sale := &entity.Sale{
		ID:     1001,
		UserID: 7,
		Date:   time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		Total:  decimal.RequireFromString("76.50"),
		Lines: []entity.SaleLine{
			{ProductID: 8, Quantity: 3, UnitPrice: decimal.RequireFromString("25.50")},
		},
	}
	doc, err := toSaleDoc(sale)
	require.NoError(t, err)

	back, err := doc.entity()
	require.NoError(t, err)
	assert.True(t, back.Total.Equal(sale.Total))
	assert.True(t, back.Lines[0].UnitPrice.Equal(decimal.RequireFromString("25.5")))
	assert.Equal(t, sale.ComputeTotal().String(), back.ComputeTotal().String())
}

func TestProductDoc(t *testing.T) {
	p := &entity.Product{ID: 5, Name: "Taza", Price: decimal.RequireFromString("0.1"), Available: true}
	doc, err := toProductDoc(p)
	require.NoError(t, err)
	back, err := doc.entity()
	require.NoError(t, err)
	assert.Equal(t, "0.1", back.Price.String())
	assert.Equal(t, p.Name, back.Name)
}
