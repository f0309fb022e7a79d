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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, date, customer_id, is_credit_sale, payment_type, status, total, created_by, created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
// La venta posee sus ítems: GetByID los devuelve siempre cargados.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta (los ítems van por CreateItem).
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.CustomerID, sale.IsCreditSale, sale.PaymentType,
		sale.Status, sale.Total, sale.CreatedBy, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la venta con sus valores congelados.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, product_sku, product_name, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.ProductSKU, item.ProductName,
		item.Quantity, item.UnitPrice, item.TaxRate, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus ítems.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene una venta bloqueando la cabecera (SELECT FOR UPDATE),
// para serializar anulación y facturación concurrentes sobre la misma venta.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// UpdateStatus cambia el estado de la venta (pasaje a VOIDED).
func (r *SaleRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSaleNotFound, id)
	}
	return nil
}

// List lista ventas con paginación, de la más reciente a la más antigua.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, sale := range list {
		items, err := r.loadItems(sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
	}
	return list, nil
}

func (r *SaleRepo) getOne(query, id string) (*entity.Sale, error) {
	sale, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.loadItems(sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (r *SaleRepo) loadItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_sku, product_name, quantity, unit_price, tax_rate, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY product_sku`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductSKU, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID *string // customer_id es NULL en ventas de mostrador
	err := row.Scan(&s.ID, &s.Date, &customerID, &s.IsCreditSale, &s.PaymentType,
		&s.Status, &s.Total, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}
	return &s, nil
}
