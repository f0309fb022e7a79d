package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condición frente al IVA del cliente. Determina el tipo de comprobante:
// responsable inscripto recibe factura A (IVA discriminado), el resto B.
const (
	TaxConditionResponsableInscripto = "RESPONSABLE_INSCRIPTO"
	TaxConditionMonotributo          = "MONOTRIBUTO"
	TaxConditionConsumidorFinal      = "CONSUMIDOR_FINAL"
	TaxConditionExento               = "EXENTO"
)

// Customer representa un cliente de la cuenta corriente y facturación.
// CreditBalance es el saldo materializado del libro de crédito (suma corriente
// de credit_entries); solo lo mutan las operaciones del libro de crédito.
type Customer struct {
	ID            string
	Name          string
	TaxID         string // CUIT o DNI
	TaxCondition  string
	Email         string
	Phone         string
	CreditLimit   decimal.Decimal // >= 0
	CreditBalance decimal.Decimal // 0 <= saldo adeudado <= límite
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
