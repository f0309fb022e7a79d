package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/billing"
	"github.com/tu-usuario/pos-backoffice/internal/application/credit"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/pkg/validator"
)

// CustomerHandler maneja las peticiones HTTP de clientes y su cuenta corriente (protegido).
type CustomerHandler struct {
	customerUC *billing.CustomerUseCase
	creditUC   *credit.LedgerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(customerUC *billing.CustomerUseCase, creditUC *credit.LedgerUseCase) *CustomerHandler {
	return &CustomerHandler{customerUC: customerUC, creditUC: creditUC}
}

// Create da de alta un cliente.
// POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return badBody(c, "campo inválido: "+errs[0].FailedField)
	}
	customer, err := h.customerUC.Create(billing.CreateCustomerInput{
		Name:         in.Name,
		TaxID:        in.TaxID,
		TaxCondition: in.TaxCondition,
		Email:        in.Email,
		Phone:        in.Phone,
		CreditLimit:  in.CreditLimit,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CustomerFromEntity(customer))
}

// GetByID obtiene un cliente.
// GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.customerUC.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CustomerFromEntity(customer))
}

// List lista clientes.
// GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c, "query inválida")
	}
	page.DefaultPage()
	customers, err := h.customerUC.List(page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, dto.CustomerFromEntity(customer))
	}
	return c.JSON(out)
}

// RecordPayment registra un pago de cuenta corriente.
// POST /api/customers/:id/payments
func (h *CustomerHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return badBody(c, "campo inválido: "+errs[0].FailedField)
	}
	entry, err := h.creditUC.RecordPayment(c.Context(), c.Params("id"), in.Amount, in.ReferenceID, in.Note, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreditEntryFromEntity(entry))
}

// Ledger lista el libro de crédito del cliente.
// GET /api/customers/:id/ledger
func (h *CustomerHandler) Ledger(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c, "query inválida")
	}
	page.DefaultPage()
	entries, err := h.creditUC.ListEntries(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.CreditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.CreditEntryFromEntity(e))
	}
	return c.JSON(out)
}
