package billing

import (
	"context"

	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de la transacción de emisión de
// factura. El chequeo de duplicado, la asignación del número de serie y la
// inserción del comprobante ocurren en la misma transacción: dos emisiones
// concurrentes sobre la misma venta no pueden emitir dos facturas ni
// consumir números de más.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		seriesRepo repository.InvoiceSeriesRepository,
	) error) error
}
