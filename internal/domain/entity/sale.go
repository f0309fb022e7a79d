package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la venta.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusVoided    = "VOIDED" // anulada: stock restituido y débito revertido
)

// Tipos de pago.
const (
	PaymentTypeCash     = "CASH"
	PaymentTypeCard     = "CARD"
	PaymentTypeTransfer = "TRANSFER"
	PaymentTypeCredit   = "CREDIT" // cuenta corriente
)

// Sale es la cabecera de una venta ya confirmada. Se crea una sola vez dentro
// de la transacción de venta y es inmutable, salvo el pasaje a VOIDED.
// Total es derivado (suma de subtotales de los ítems congelados).
type Sale struct {
	ID           string
	Date         time.Time
	CustomerID   string // vacío = venta sin cliente (mostrador)
	IsCreditSale bool
	PaymentType  string
	Status       string
	Total        decimal.Decimal
	CreatedBy    string
	CreatedAt    time.Time
	Items        []*SaleItem
}

// SaleItem es una línea de la venta. UnitPrice, TaxRate, ProductSKU y
// ProductName se congelan al momento de la venta: cambios posteriores del
// catálogo no alteran ventas ni facturas ya registradas.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductSKU  string
	ProductName string
	Quantity    decimal.Decimal // > 0
	UnitPrice   decimal.Decimal // precio neto congelado
	TaxRate     decimal.Decimal // alícuota congelada
	Subtotal    decimal.Decimal // Quantity × UnitPrice redondeado a 2 decimales
}
