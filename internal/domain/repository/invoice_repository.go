package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// InvoiceRepository puerto de persistencia para comprobantes.
// Create debe traducir la violación de la constraint única sobre sale_id a
// domain.ErrDuplicateInvoice: la unicidad la garantiza la base, no solo el
// chequeo de aplicación, para ser correcta bajo emisión concurrente.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetBySaleID(saleID string) (*entity.Invoice, error)
	List(limit, offset int) ([]*entity.Invoice, error)
}
