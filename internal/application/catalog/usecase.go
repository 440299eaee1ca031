package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// CatalogUseCase vista del catálogo de productos. El precio del catálogo es la fuente de verdad
// de las ventas; Update no altera ventas ya registradas.
type CatalogUseCase struct {
	repo repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso con el puerto de persistencia.
func NewCatalogUseCase(repo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// FindByID devuelve ErrProductNotFound si el producto no existe.
func (uc *CatalogUseCase) FindByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	return dto.NewProductResponse(p), nil
}

// ListAll devuelve todo el catálogo.
func (uc *CatalogUseCase) ListAll(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductList(list), nil
}

// FilterByPriceRange devuelve los productos con desde <= precio <= hasta.
// Si alguno de los límites no es un número devuelve ErrInvalidRange.
func (uc *CatalogUseCase) FilterByPriceRange(ctx context.Context, desde, hasta string) ([]dto.ProductResponse, error) {
	min, err := decimal.NewFromString(strings.TrimSpace(desde))
	if err != nil {
		return nil, domain.ErrInvalidRange
	}
	max, err := decimal.NewFromString(strings.TrimSpace(hasta))
	if err != nil {
		return nil, domain.ErrInvalidRange
	}
	list, err := uc.repo.ListByPriceRange(ctx, min, max)
	if err != nil {
		return nil, err
	}
	return dto.NewProductList(list), nil
}

// Update modifica los campos presentes del producto. Precio negativo o nombre vacío = ErrInvalidInput.
func (uc *CatalogUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if err := uc.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}
