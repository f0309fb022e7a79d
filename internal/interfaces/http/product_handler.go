package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
	"github.com/tu-usuario/pos-backoffice/pkg/validator"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create da de alta un producto (stock inicial vía movimiento RECEIPT).
// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return badBody(c, "campo inválido: "+errs[0].FailedField)
	}
	product, err := h.uc.Create(usecase.CreateProductInput{
		SKU:             in.SKU,
		Name:            in.Name,
		Description:     in.Description,
		Cost:            in.Cost,
		Price:           in.Price,
		TaxRate:         in.TaxRate,
		MinStock:        in.MinStock,
		TracksInventory: in.TracksInventory,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductFromEntity(product))
}

// GetByID obtiene un producto.
// GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ProductFromEntity(product))
}

// List lista productos.
// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c, "query inválida")
	}
	page.DefaultPage()
	products, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductFromEntity(p))
	}
	return c.JSON(out)
}
