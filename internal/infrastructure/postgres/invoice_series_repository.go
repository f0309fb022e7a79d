package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.InvoiceSeriesRepository = (*InvoiceSeriesRepo)(nil)

// InvoiceSeriesRepo contador de numeración por serie (punto de venta, tipo)
// sobre PostgreSQL. El contador vive en una fila; el upsert con RETURNING
// incrementa y lee en un solo paso, y el row lock implícito serializa las
// emisiones concurrentes de la misma serie. Si la transacción aborta, el
// incremento se revierte y el número no se consume.
type InvoiceSeriesRepo struct {
	q Querier
}

// NewInvoiceSeriesRepository construye el adaptador. Usar siempre dentro de una tx.
func NewInvoiceSeriesRepository(q Querier) *InvoiceSeriesRepo {
	return &InvoiceSeriesRepo{q: q}
}

// NextNumber incrementa y devuelve el siguiente número de la serie.
func (r *InvoiceSeriesRepo) NextNumber(pointOfSale, invoiceType string) (int64, error) {
	query := `
		INSERT INTO invoice_series (point_of_sale, invoice_type, last_number, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (point_of_sale, invoice_type)
		DO UPDATE SET last_number = invoice_series.last_number + 1, updated_at = now()
		RETURNING last_number`
	var number int64
	err := r.q.QueryRow(context.Background(), query, pointOfSale, invoiceType).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return number, nil
}
