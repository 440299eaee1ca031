package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta para su dueño.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	generator   ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, userRepo: userRepo, productRepo: productRepo, generator: generator}
}

// DownloadReceipt devuelve (pdf, nombre de archivo).
//
// Retorna:
//   - domain.ErrUnauthorized  sin identidad.
//   - domain.ErrSaleNotFound  si la venta no existe.
//   - domain.ErrForbidden     si la venta es de otro usuario.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, identity *entity.Identity, saleID int64) ([]byte, string, error) {
	if identity == nil {
		return nil, "", domain.ErrUnauthorized
	}
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrSaleNotFound
	}
	if sale.UserID != identity.UserID {
		return nil, "", domain.ErrForbidden
	}

	customer, err := uc.userRepo.GetByID(ctx, sale.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener usuario: %w", err)
	}
	if customer == nil {
		// El usuario pudo borrarse después; el comprobante usa los datos de la sesión.
		customer = &entity.User{ID: identity.UserID, Name: identity.Name, Email: identity.Email}
	}

	// Los precios son los capturados en la venta; del catálogo solo se toma el nombre.
	lines := make([]ReceiptLine, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		name := fmt.Sprintf("Producto %d", l.ProductID)
		if p, pErr := uc.productRepo.GetByID(ctx, l.ProductID); pErr == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, ReceiptLine{SaleLine: l, ProductName: name, Subtotal: l.Subtotal()})
	}

	pdf, err := uc.generator.GenerateSaleReceipt(ctx, sale, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("venta_%d.pdf", sale.ID), nil
}
