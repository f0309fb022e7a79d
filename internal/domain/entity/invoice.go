package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante.
const (
	InvoiceTypeA = "A" // IVA discriminado por línea (cliente responsable inscripto)
	InvoiceTypeB = "B" // total final sin IVA discriminado
)

// Invoice es el comprobante fiscal de una venta. Relación uno a uno con la
// venta (constraint única sobre SaleID) y numeración estrictamente creciente
// dentro de la serie (PointOfSale, Type). Inmutable una vez emitida.
// Los datos del cliente son una copia al momento de la emisión: ediciones
// posteriores del cliente no alteran comprobantes históricos.
type Invoice struct {
	ID                   string
	SaleID               string
	Type                 string
	PointOfSale          string // serie de numeración (punto de emisión)
	Number               int64
	Date                 time.Time
	CustomerName         string
	CustomerTaxID        string
	CustomerTaxCondition string
	NetTotal             decimal.Decimal
	TaxTotal             decimal.Decimal
	GrandTotal           decimal.Decimal
	CreatedBy            string
	CreatedAt            time.Time
}
