package repository

// InvoiceSeriesRepository puerto del contador de numeración por serie.
// NextNumber incrementa y devuelve el siguiente número dentro de la
// transacción en curso; si la transacción aborta, el número no se consume.
type InvoiceSeriesRepository interface {
	NextNumber(pointOfSale, invoiceType string) (int64, error)
}
