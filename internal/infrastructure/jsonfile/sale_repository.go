package jsonfile

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository = (*SaleRepository)(nil)
	_ repository.SaleTxRunner   = (*TxRunner)(nil)
)

// SaleRepository libro de ventas en ventas.json. Fuera de RunSale cada método toma el lock;
// dentro de RunSale el lock ya está tomado (locked = true).
type SaleRepository struct {
	s      *Store
	locked bool
}

func NewSaleRepository(s *Store) *SaleRepository {
	return &SaleRepository{s: s}
}

func (r *SaleRepository) lock() func() {
	if r.locked {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// NextID devuelve max+1, o entity.SaleIDBase si el libro está vacío.
func (r *SaleRepository) NextID(_ context.Context) (int64, error) {
	defer r.lock()()
	next := entity.SaleIDBase
	for _, rec := range r.s.sales {
		if rec.ID >= next {
			next = rec.ID + 1
		}
	}
	return next, nil
}

func (r *SaleRepository) Create(_ context.Context, sale *entity.Sale) error {
	defer r.lock()()
	for _, rec := range r.s.sales {
		if rec.ID == sale.ID {
			return domain.Persistence("registrar venta", domain.ErrConflict)
		}
	}
	next := append(append([]saleRecord(nil), r.s.sales...), toSaleRecord(sale))
	if err := r.s.write(salesFile, next); err != nil {
		return domain.Persistence("registrar venta", err)
	}
	r.s.sales = next
	return nil
}

func (r *SaleRepository) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	defer r.lock()()
	for _, rec := range r.s.sales {
		if rec.ID == id {
			return rec.entity(), nil
		}
	}
	return nil, nil
}

func (r *SaleRepository) List(_ context.Context) ([]*entity.Sale, error) {
	defer r.lock()()
	out := make([]*entity.Sale, 0, len(r.s.sales))
	for _, rec := range r.s.sales {
		out = append(out, rec.entity())
	}
	return out, nil
}

func (r *SaleRepository) ListByUser(_ context.Context, userID int64) ([]*entity.Sale, error) {
	defer r.lock()()
	out := make([]*entity.Sale, 0)
	for _, rec := range r.s.sales {
		if rec.UserID == userID {
			out = append(out, rec.entity())
		}
	}
	return out, nil
}

// TxRunner serializa las ventas con el mutex del Store.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunSale ejecuta fn con el lock tomado; NextID + Create no se intercalan con otra venta.
func (r *TxRunner) RunSale(ctx context.Context, fn func(sales repository.SaleRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(&SaleRepository{s: r.s, locked: true})
}
