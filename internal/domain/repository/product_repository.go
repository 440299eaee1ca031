package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
type ProductRepository interface {
	// GetByID devuelve (nil, nil) si el producto no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// ListByPriceRange filtra min <= precio <= max.
	ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error)
	// Save inserta o reemplaza el producto por ID (el ID lo asigna quien carga el catálogo).
	Save(ctx context.Context, product *entity.Product) error
}
