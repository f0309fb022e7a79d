package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/sales"
	"github.com/tu-usuario/pos-backoffice/pkg/validator"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create confirma una venta: descuenta stock y debita crédito si corresponde.
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return badBody(c, "campo inválido: "+errs[0].FailedField)
	}

	items := make([]sales.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	sale, err := h.uc.CreateSale(c.Context(), sales.CreateSaleInput{
		Items:              items,
		CustomerID:         in.CustomerID,
		IsCreditSale:       in.IsCreditSale,
		PaymentType:        in.PaymentType,
		UserID:             GetUserID(c),
		AllowNegativeStock: in.AllowNegativeStock,
		AllowOverdraft:     in.AllowOverdraft,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleFromEntity(sale))
}

// GetByID obtiene una venta con sus ítems.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SaleFromEntity(sale))
}

// Void anula una venta: restituye stock y revierte el débito de crédito.
// POST /api/sales/:id/void
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	sale, err := h.uc.VoidSale(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SaleFromEntity(sale))
}
