package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, sale_id, type, point_of_sale, number, date, customer_name, customer_tax_id, customer_tax_condition, net_total, tax_total, grand_total, created_by, created_at`

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL
// (usable con pool o tx). Las facturas son inmutables: solo INSERT y SELECT.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una factura. La constraint única sobre sale_id garantiza una
// factura por venta aun bajo emisión concurrente; la violación se traduce a
// ErrDuplicateInvoice.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.SaleID, inv.Type, inv.PointOfSale, inv.Number, inv.Date,
		inv.CustomerName, inv.CustomerTaxID, inv.CustomerTaxCondition,
		inv.NetTotal, inv.TaxTotal, inv.GrandTotal, inv.CreatedBy, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get invoice")
}

// GetBySaleID obtiene la factura asociada a una venta, si existe.
func (r *InvoiceRepo) GetBySaleID(saleID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE sale_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, saleID), "get invoice by sale")
}

// List lista facturas con paginación, de la más reciente a la más antigua.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.SaleID, &inv.Type, &inv.PointOfSale, &inv.Number, &inv.Date,
			&inv.CustomerName, &inv.CustomerTaxID, &inv.CustomerTaxCondition,
			&inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal, &inv.CreatedBy, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) scanOne(row pgx.Row, op string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.SaleID, &inv.Type, &inv.PointOfSale, &inv.Number, &inv.Date,
		&inv.CustomerName, &inv.CustomerTaxID, &inv.CustomerTaxCondition,
		&inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &inv, nil
}
