package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditEntry es una entrada del libro de crédito del cliente (solo inserción).
// Amount positivo = débito (aumenta lo adeudado, venta a crédito);
// Amount negativo = pago. El saldo del cliente es la suma corriente.
type CreditEntry struct {
	ID          string
	CustomerID  string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
	ReferenceID string // venta o recibo correlacionado
	Note        string
}
