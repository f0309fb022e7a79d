package entity

import "time"

// InvoiceSeries lleva el último número emitido por punto de venta y tipo de
// comprobante. El contador vive en una fila de la base y se incrementa dentro
// de la misma transacción que inserta la factura; nunca en memoria.
type InvoiceSeries struct {
	PointOfSale string
	InvoiceType string
	LastNumber  int64
	UpdatedAt   time.Time
}
