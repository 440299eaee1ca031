package jsonfile

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository catálogo en productos.json.
type ProductRepository struct {
	s *Store
}

func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.products {
		if rec.ID == id {
			return rec.entity(), nil
		}
	}
	return nil, nil
}

func (r *ProductRepository) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, rec := range r.s.products {
		out = append(out, rec.entity())
	}
	return out, nil
}

func (r *ProductRepository) ListByPriceRange(_ context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0)
	for _, rec := range r.s.products {
		price := decimal.Decimal(rec.Price)
		if price.GreaterThanOrEqual(min) && price.LessThanOrEqual(max) {
			out = append(out, rec.entity())
		}
	}
	return out, nil
}

// Save reemplaza el producto con el mismo ID o lo agrega al final.
func (r *ProductRepository) Save(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	next := append([]productRecord(nil), r.s.products...)
	rec := toProductRecord(p)
	replaced := false
	for i := range next {
		if next[i].ID == p.ID {
			next[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, rec)
	}
	if err := r.s.write(productsFile, next); err != nil {
		return domain.Persistence("guardar producto", err)
	}
	r.s.products = next
	return nil
}
