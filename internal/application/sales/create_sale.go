package sales

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// CreateSaleUseCase registra ventas: recalcula precios desde el catálogo, asigna el ID
// y persiste en el libro de ventas dentro de una única ejecución serializada.
type CreateSaleUseCase struct {
	txRunner    repository.SaleTxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
	log         *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner repository.SaleTxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		now:         time.Now,
		log:         log.Component("ventas"),
	}
}

// CreateSale registra la venta del usuario autenticado. Todo o nada: si un producto no existe
// no se escribe nada. Los precios enviados por el cliente no forman parte del contrato.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, identity *entity.Identity, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// 1) Identidad autenticada
	if identity == nil || identity.UserID <= 0 {
		return nil, domain.ErrUnauthorized
	}

	// 2) Líneas no vacías y cantidades en 1..MaxQuantity
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 || int64(item.Quantity) > entity.MaxQuantity {
			return nil, domain.ErrInvalidInput
		}
	}

	// 3) y 4) Resolver productos en orden y capturar el precio del catálogo
	lines := make([]entity.SaleLine, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
		}
		line := entity.SaleLine{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}
		total = total.Add(line.Subtotal())
		lines = append(lines, line)
	}

	// 5) a 7) ID + alta bajo la misma ejecución serializada
	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(ledger repository.SaleRepository) error {
		id, err := ledger.NextID(ctx)
		if err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:     id,
			UserID: identity.UserID,
			Date:   uc.now().UTC(),
			Total:  total,
			Lines:  lines,
		}
		return ledger.Create(ctx, sale)
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("usuario_id", identity.UserID).Msg("registrar venta")
		if errors.Is(err, domain.ErrPersistence) {
			return nil, err
		}
		return nil, domain.Persistence("registrar venta", err)
	}

	uc.log.Info().
		Int64("venta_id", sale.ID).
		Int64("usuario_id", sale.UserID).
		Str("total", sale.Total.StringFixed(2)).
		Int("lineas", len(sale.Lines)).
		Msg("venta registrada")

	// 8)
	return dto.NewSaleResponse(sale), nil
}

// ListSales devuelve todas las ventas del libro.
func (uc *CreateSaleUseCase) ListSales(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewSaleList(list), nil
}
