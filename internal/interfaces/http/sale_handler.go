package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/domain"
)

// SaleHandler maneja las peticiones de ventas.
type SaleHandler struct {
	uc       *sales.CreateSaleUseCase
	receipts *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.CreateSaleUseCase, receipts *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipts: receipts}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Los precios se toman del catálogo; el usuario es el de la sesión.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        body  body  dto.CreateSaleRequest  true  "productos: id_producto, cantidad"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if identity == nil {
		return writeError(c, domain.ErrUnauthorized)
	}
	var in dto.CreateSaleRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	sale, err := h.uc.CreateSale(c.Context(), identity, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListSales(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Description  Solo el dueño de la venta.
// @Tags         ventas
// @Produce      application/pdf
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}    file
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ventas/{id}/comprobante [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	pdf, filename, err := h.receipts.DownloadReceipt(c.Context(), GetIdentity(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
