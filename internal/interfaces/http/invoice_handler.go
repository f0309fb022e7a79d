package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/billing"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/pkg/validator"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc                 *billing.IssueInvoiceUseCase
	defaultPointOfSale string
}

// NewInvoiceHandler construye el handler. defaultPointOfSale es la serie de la
// terminal (config POS_POINT_OF_SALE), usada si el request no indica otra.
func NewInvoiceHandler(uc *billing.IssueInvoiceUseCase, defaultPointOfSale string) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, defaultPointOfSale: defaultPointOfSale}
}

// Issue emite la factura de una venta.
// POST /api/invoices
func (h *InvoiceHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return badBody(c, "campo inválido: "+errs[0].FailedField)
	}
	pointOfSale := in.PointOfSale
	if pointOfSale == "" {
		pointOfSale = h.defaultPointOfSale
	}

	invoice, err := h.uc.IssueInvoice(c.Context(), billing.IssueInvoiceInput{
		SaleID:      in.SaleID,
		PointOfSale: pointOfSale,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InvoiceFromEntity(invoice))
}

// GetByID obtiene una factura junto con la venta que la respalda.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, sale, err := h.uc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	out := dto.InvoiceDetailResponse{Invoice: dto.InvoiceFromEntity(invoice)}
	if sale != nil {
		s := dto.SaleFromEntity(sale)
		out.Sale = &s
	}
	return c.JSON(out)
}
