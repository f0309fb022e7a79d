package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/pkg/validator"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement registra un movimiento manual (ingreso, ajuste, devolución).
// POST /api/inventory/movements
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return badBody(c, "campo inválido: "+errs[0].FailedField)
	}

	mov, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UserID:        GetUserID(c),
		ReferenceID:   in.ReferenceID,
		Note:          in.Note,
		AllowNegative: in.AllowNegative,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(mov))
}

// ListMovements lista los movimientos de un producto con filtro de fechas.
// GET /api/inventory/movements?product_id=...&from=...&to=...
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c, "query inválida")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return badBody(c, "campo inválido: "+errs[0].FailedField)
	}
	in.DefaultPage()

	var from, to *time.Time
	if in.From != "" {
		t, err := time.Parse(time.RFC3339, in.From)
		if err != nil {
			return badBody(c, "from: fecha inválida (RFC 3339)")
		}
		from = &t
	}
	if in.To != "" {
		t, err := time.Parse(time.RFC3339, in.To)
		if err != nil {
			return badBody(c, "to: fecha inválida (RFC 3339)")
		}
		to = &t
	}

	movs, err := h.uc.ListMovements(c.Context(), in.ProductID, from, to, in.Limit, in.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementFromEntity(m))
	}
	return c.JSON(out)
}
