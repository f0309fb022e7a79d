package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	Type          string          `json:"type" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	AllowNegative bool            `json:"allow_negative,omitempty"`
}

// MovementResponse movimiento del libro de inventario.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"created_by"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// MovementFromEntity arma la respuesta a partir de la entidad.
func MovementFromEntity(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Date:        m.Date,
		CreatedBy:   m.CreatedBy,
		ReferenceID: m.ReferenceID,
		Note:        m.Note,
	}
}

// ListMovementsRequest query params para GET /api/inventory/movements.
type ListMovementsRequest struct {
	ProductID string `query:"product_id" validate:"required"`
	From      string `query:"from,omitempty"` // RFC 3339
	To        string `query:"to,omitempty"`
	PageRequest
}
