package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// SaleRepository es el libro de ventas (append-only).
type SaleRepository interface {
	// NextID devuelve max(ids)+1 o entity.SaleIDBase si no hay ventas.
	// Solo es seguro frente a concurrencia dentro de SaleTxRunner.RunSale.
	NextID(ctx context.Context) (int64, error)
	// Create agrega la venta de forma atómica; si falla, la venta no queda visible.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	List(ctx context.Context) ([]*entity.Sale, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Sale, error)
}

// SaleTxRunner ejecuta fn con un libro de ventas en el que NextID + Create quedan serializados
// respecto de cualquier otra ejecución de RunSale.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(sales SaleRepository) error) error
}
