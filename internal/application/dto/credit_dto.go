package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// RecordPaymentRequest body para POST /api/customers/:id/payments.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// CreditEntryResponse entrada del libro de crédito.
type CreditEntryResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"` // positivo = débito, negativo = pago
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"created_by"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// CreditEntryFromEntity arma la respuesta a partir de la entidad.
func CreditEntryFromEntity(e *entity.CreditEntry) CreditEntryResponse {
	return CreditEntryResponse{
		ID:          e.ID,
		CustomerID:  e.CustomerID,
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedBy:   e.CreatedBy,
		ReferenceID: e.ReferenceID,
		Note:        e.Note,
	}
}
