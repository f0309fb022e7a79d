package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/fiscal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// IssueInvoiceUseCase emite el comprobante fiscal de una venta confirmada:
// deriva el tipo según la condición de IVA del cliente, recalcula los montos
// desde los ítems congelados de la venta, asigna el siguiente número de la
// serie y persiste la factura, todo en una sola transacción.
type IssueInvoiceUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository // lecturas fuera de tx
	saleRepo    repository.SaleRepository
}

// NewIssueInvoiceUseCase construye el caso de uso.
func NewIssueInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	saleRepo repository.SaleRepository,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{txRunner: txRunner, invoiceRepo: invoiceRepo, saleRepo: saleRepo}
}

// IssueInvoiceInput entrada de IssueInvoice.
type IssueInvoiceInput struct {
	SaleID      string
	PointOfSale string // serie de numeración (ej: "0001")
	UserID      string
}

// IssueInvoice emite la factura de la venta. Precondiciones: la venta existe,
// tiene cliente (las ventas de mostrador no se facturan), no está anulada y
// no tiene factura previa. Ante cualquier fallo la transacción se revierte
// completa y no se consume ningún número de serie.
func (uc *IssueInvoiceUseCase) IssueInvoice(ctx context.Context, in IssueInvoiceInput) (*entity.Invoice, error) {
	if in.SaleID == "" || in.PointOfSale == "" || in.UserID == "" {
		return nil, fmt.Errorf("%w: venta, punto de venta y usuario son requeridos", domain.ErrInvalidInput)
	}

	now := time.Now()
	var invoice *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		seriesRepo repository.InvoiceSeriesRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: %s", domain.ErrSaleNotFound, in.SaleID)
		}
		if sale.Status == entity.SaleStatusVoided {
			return fmt.Errorf("%w: una venta anulada no puede facturarse", domain.ErrConflict)
		}
		if sale.CustomerID == "" {
			return domain.ErrCustomerRequired
		}

		// Pre-chequeo de duplicado. La constraint única sobre sale_id lo
		// garantiza ante emisión concurrente; este chequeo evita consumir un
		// número de serie en el caso común.
		existing, err := invoiceRepo.GetBySaleID(in.SaleID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: factura %s-%08d", domain.ErrDuplicateInvoice, existing.PointOfSale, existing.Number)
		}

		customer, err := customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, sale.CustomerID)
		}

		// Tipo de comprobante según la condición de IVA al momento de emitir.
		invoiceType := fiscal.InvoiceTypeFor(customer.TaxCondition)

		// Montos recalculados desde los ítems congelados de la venta, nunca
		// desde el total cacheado ni desde precios vivos del catálogo.
		lines := make([]fiscal.Line, len(sale.Items))
		for i, item := range sale.Items {
			lines[i] = fiscal.Line{
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				TaxRate:   item.TaxRate,
			}
		}
		totals := fiscal.ComputeTotals(lines)

		// Siguiente número de la serie, dentro de esta misma transacción.
		number, err := seriesRepo.NextNumber(in.PointOfSale, invoiceType)
		if err != nil {
			return err
		}

		invoice = &entity.Invoice{
			ID:                   uuid.New().String(),
			SaleID:               sale.ID,
			Type:                 invoiceType,
			PointOfSale:          in.PointOfSale,
			Number:               number,
			Date:                 now,
			CustomerName:         customer.Name,
			CustomerTaxID:        customer.TaxID,
			CustomerTaxCondition: customer.TaxCondition,
			NetTotal:             totals.Net,
			TaxTotal:             totals.Tax,
			GrandTotal:           totals.Gross,
			CreatedBy:            in.UserID,
			CreatedAt:            now,
		}
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice devuelve una factura emitida junto con la venta que la respalda.
func (uc *IssueInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*entity.Invoice, *entity.Sale, error) {
	if id == "" {
		return nil, nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, id)
	}
	sale, err := uc.saleRepo.GetByID(invoice.SaleID)
	if err != nil {
		return nil, nil, err
	}
	return invoice, sale, nil
}
