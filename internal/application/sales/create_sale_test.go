package sales

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

type memProducts struct {
	mu    sync.Mutex
	items map[int64]*entity.Product
}

func (m *memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) List(context.Context) ([]*entity.Product, error) { return nil, nil }
func (m *memProducts) ListByPriceRange(context.Context, decimal.Decimal, decimal.Decimal) ([]*entity.Product, error) {
	return nil, nil
}

func (m *memProducts) Save(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

// memLedger libro de ventas en memoria; RunSale serializa con un mutex.
type memLedger struct {
	mu        sync.Mutex
	sales     []*entity.Sale
	createErr error
}

func (m *memLedger) NextID(context.Context) (int64, error) {
	max := entity.SaleIDBase - 1
	for _, s := range m.sales {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1, nil
}

func (m *memLedger) Create(_ context.Context, s *entity.Sale) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *s
	m.sales = append(m.sales, &cp)
	return nil
}

func (m *memLedger) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memLedger) List(context.Context) ([]*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Sale(nil), m.sales...), nil
}

func (m *memLedger) ListByUser(_ context.Context, userID int64) ([]*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Sale
	for _, s := range m.sales {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memLedger) RunSale(_ context.Context, fn func(repository.SaleRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m)
}

func newSales() (*CreateSaleUseCase, *memProducts, *memLedger) {
	products := &memProducts{items: map[int64]*entity.Product{
		5: {ID: 5, Name: "Taza", Price: decimal.NewFromInt(10), Available: true},
		8: {ID: 8, Name: "Mate", Price: decimal.RequireFromString("25.50"), Available: true},
	}}
	ledger := &memLedger{}
	uc := NewCreateSaleUseCase(ledger, products, ledger, logger.Nop())
	uc.now = func() time.Time { return time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC) }
	return uc, products, ledger
}

var ana = &entity.Identity{UserID: 7, Email: "ana@example.com", Name: "Ana"}

func TestCreateSale_PrimeraVenta(t *testing.T) {
	uc, _, ledger := newSales()

	out, err := uc.CreateSale(context.Background(), ana, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1001), out.ID)
	assert.Equal(t, int64(7), out.UserID)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(30)))
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.Len(t, ledger.sales, 1)
}

func TestCreateSale_TotalEsSumaDeSubtotales(t *testing.T) {
	uc, _, _ := newSales()

	out, err := uc.CreateSale(context.Background(), ana, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: 8, Quantity: 2}, {ProductID: 5, Quantity: 1}, {ProductID: 8, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "86.5", out.Total.String())
	assert.Equal(t, []int64{8, 5, 8}, []int64{out.Lines[0].ProductID, out.Lines[1].ProductID, out.Lines[2].ProductID})

	sum := decimal.Zero
	for _, l := range out.Lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, sum.Equal(out.Total))
}

func TestCreateSale_PrecioCapturadoNoCambia(t *testing.T) {
	uc, products, ledger := newSales()

	out, err := uc.CreateSale(context.Background(), ana, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, products.Save(context.Background(), &entity.Product{ID: 5, Name: "Taza", Price: decimal.NewFromInt(99)}))

	stored, err := ledger.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, stored.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(10)))
}

func TestCreateSale_ProductoInexistenteNoEscribe(t *testing.T) {
	uc, _, ledger := newSales()

	_, err := uc.CreateSale(context.Background(), ana, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: 1}, {ProductID: 42, Quantity: 1}},
	})
	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.ProductID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, ledger.sales)
}

func TestCreateSale_EntradaInvalida(t *testing.T) {
	uc, _, ledger := newSales()
	cases := map[string]dto.CreateSaleRequest{
		"sin líneas":        {},
		"cantidad cero":     {Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: 0}}},
		"cantidad negativa": {Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: -2}}},
		"cantidad excedida": {Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: entity.MaxQuantity + 1}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateSale(context.Background(), ana, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, ledger.sales)
}

func TestCreateSale_CantidadMaxima(t *testing.T) {
	uc, _, ledger := newSales()

	out, err := uc.CreateSale(context.Background(), ana, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: entity.MaxQuantity}},
	})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(10*entity.MaxQuantity)))
	assert.Len(t, ledger.sales, 1)
}

func TestCreateSale_SinIdentidad(t *testing.T) {
	uc, _, _ := newSales()
	_, err := uc.CreateSale(context.Background(), nil, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateSale_FalloDePersistencia(t *testing.T) {
	uc, _, ledger := newSales()
	ledger.createErr = errors.New("disco lleno")

	_, err := uc.CreateSale(context.Background(), ana, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorContains(t, err, "disco lleno")
	assert.Empty(t, ledger.sales)
}

func TestCreateSale_ConcurrentesIDsUnicos(t *testing.T) {
	uc, _, ledger := newSales()
	const n = 25

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.CreateSale(context.Background(), ana, dto.CreateSaleRequest{
				Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: 1}},
			})
			if assert.NoError(t, err) {
				ids <- out.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id repetido %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	for id := int64(1001); id < 1001+n; id++ {
		assert.True(t, seen[id], "falta el id %d", id)
	}
	assert.Len(t, ledger.sales, n)
}

func TestListSales(t *testing.T) {
	uc, _, _ := newSales()

	empty, err := uc.ListSales(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = uc.CreateSale(context.Background(), ana, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{{ProductID: 5, Quantity: 1}}})
	require.NoError(t, err)
	list, err := uc.ListSales(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
