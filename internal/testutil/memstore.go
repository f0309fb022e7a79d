// Package testutil provee un almacén en memoria que implementa los puertos de
// repositorio y los TxRunner de la aplicación, con semántica de rollback por
// snapshot. Permite verificar en tests las propiedades transaccionales
// (atomicidad, conservación de saldos) sin una base de datos real.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// MemStore contiene todo el estado. Las entidades se guardan por valor: los
// repos devuelven copias, igual que una base real.
type MemStore struct {
	mu            sync.Mutex
	products      map[string]entity.Product
	movements     []entity.InventoryMovement
	customers     map[string]entity.Customer
	creditEntries []entity.CreditEntry
	sales         map[string]entity.Sale
	saleItems     map[string][]entity.SaleItem // por venta
	invoices      map[string]entity.Invoice
	invoiceBySale map[string]string
	series        map[string]int64 // "puntoDeVenta|tipo" → último número
}

// NewMemStore construye un almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		products:      map[string]entity.Product{},
		customers:     map[string]entity.Customer{},
		sales:         map[string]entity.Sale{},
		saleItems:     map[string][]entity.SaleItem{},
		invoices:      map[string]entity.Invoice{},
		invoiceBySale: map[string]string{},
		series:        map[string]int64{},
	}
}

// ── snapshot / restore (rollback) ─────────────────────────────────────────────

type snapshot struct {
	products      map[string]entity.Product
	movements     []entity.InventoryMovement
	customers     map[string]entity.Customer
	creditEntries []entity.CreditEntry
	sales         map[string]entity.Sale
	saleItems     map[string][]entity.SaleItem
	invoices      map[string]entity.Invoice
	invoiceBySale map[string]string
	series        map[string]int64
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *MemStore) take() snapshot {
	return snapshot{
		products:      cloneMap(s.products),
		movements:     append([]entity.InventoryMovement(nil), s.movements...),
		customers:     cloneMap(s.customers),
		creditEntries: append([]entity.CreditEntry(nil), s.creditEntries...),
		sales:         cloneMap(s.sales),
		saleItems:     cloneMap(s.saleItems),
		invoices:      cloneMap(s.invoices),
		invoiceBySale: cloneMap(s.invoiceBySale),
		series:        cloneMap(s.series),
	}
}

func (s *MemStore) restore(snap snapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.customers = snap.customers
	s.creditEntries = snap.creditEntries
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.invoices = snap.invoices
	s.invoiceBySale = snap.invoiceBySale
	s.series = snap.series
}

// ── TxRunner de cada caso de uso ─────────────────────────────────────────────

// Run implementa inventory.TxRunner.
func (s *MemStore) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.take()
	if err := fn(&productRepo{s}, &movementRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunCredit implementa credit.TxRunner.
func (s *MemStore) RunCredit(_ context.Context, fn func(
	customerRepo repository.CustomerRepository,
	creditRepo repository.CreditLedgerRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.take()
	if err := fn(&customerRepo{s}, &creditRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunSale implementa sales.TxRunner.
func (s *MemStore) RunSale(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	customerRepo repository.CustomerRepository,
	creditRepo repository.CreditLedgerRepository,
	saleRepo repository.SaleRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.take()
	if err := fn(&productRepo{s}, &movementRepo{s}, &customerRepo{s}, &creditRepo{s}, &saleRepo{s}, &invoiceRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunBilling implementa billing.TxRunner.
func (s *MemStore) RunBilling(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	seriesRepo repository.InvoiceSeriesRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.take()
	if err := fn(&saleRepo{s}, &customerRepo{s}, &invoiceRepo{s}, &seriesRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// ── repos: productos ─────────────────────────────────────────────────────────

type productRepo struct{ s *MemStore }

// ProductRepo devuelve el repositorio de productos fuera de transacción.
func (s *MemStore) ProductRepo() repository.ProductRepository { return &productRepo{s} }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) UpdateStock(id string, quantity decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("producto %s no existe", id)
	}
	p.StockQuantity = quantity
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

// ── repos: movimientos de inventario ─────────────────────────────────────────

type movementRepo struct{ s *MemStore }

// MovementRepo devuelve el repositorio de movimientos fuera de transacción.
func (s *MemStore) MovementRepo() repository.InventoryMovementRepository { return &movementRepo{s} }

func (r *movementRepo) Create(m *entity.InventoryMovement) error {
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for i := range r.s.movements {
		m := r.s.movements[i]
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *movementRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// ── repos: clientes ──────────────────────────────────────────────────────────

type customerRepo struct{ s *MemStore }

// CustomerRepo devuelve el repositorio de clientes fuera de transacción.
func (s *MemStore) CustomerRepo() repository.CustomerRepository { return &customerRepo{s} }

func (r *customerRepo) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (r *customerRepo) GetByTaxID(taxID string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.TaxID == taxID {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *customerRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	c, ok := r.s.customers[id]
	if !ok {
		return fmt.Errorf("cliente %s no existe", id)
	}
	c.CreditBalance = balance
	c.UpdatedAt = time.Now()
	r.s.customers[id] = c
	return nil
}

func (r *customerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

// ── repos: libro de crédito ──────────────────────────────────────────────────

type creditRepo struct{ s *MemStore }

// CreditRepo devuelve el repositorio del libro de crédito fuera de transacción.
func (s *MemStore) CreditRepo() repository.CreditLedgerRepository { return &creditRepo{s} }

func (r *creditRepo) Create(e *entity.CreditEntry) error {
	r.s.creditEntries = append(r.s.creditEntries, *e)
	return nil
}

func (r *creditRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditEntry, error) {
	var out []*entity.CreditEntry
	for i := range r.s.creditEntries {
		if r.s.creditEntries[i].CustomerID == customerID {
			cp := r.s.creditEntries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *creditRepo) SumByCustomer(customerID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.s.creditEntries {
		if e.CustomerID == customerID {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

// ── repos: ventas ────────────────────────────────────────────────────────────

type saleRepo struct{ s *MemStore }

// SaleRepo devuelve el repositorio de ventas fuera de transacción.
func (s *MemStore) SaleRepo() repository.SaleRepository { return &saleRepo{s} }

func (r *saleRepo) Create(sale *entity.Sale) error {
	header := *sale
	header.Items = nil // los ítems se guardan aparte, vía CreateItem
	r.s.sales[sale.ID] = header
	return nil
}

func (r *saleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.saleItems[item.SaleID] = append(r.s.saleItems[item.SaleID], *item)
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := sale
	for i := range r.s.saleItems[id] {
		item := r.s.saleItems[id][i]
		cp.Items = append(cp.Items, &item)
	}
	return &cp, nil
}

func (r *saleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *saleRepo) UpdateStatus(id, status string) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return fmt.Errorf("venta %s no existe", id)
	}
	sale.Status = status
	r.s.sales[id] = sale
	return nil
}

func (r *saleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for id := range r.s.sales {
		sale, _ := r.GetByID(id)
		out = append(out, sale)
	}
	return out, nil
}

// ── repos: facturas y series ─────────────────────────────────────────────────

type invoiceRepo struct{ s *MemStore }

// InvoiceRepo devuelve el repositorio de facturas fuera de transacción.
func (s *MemStore) InvoiceRepo() repository.InvoiceRepository { return &invoiceRepo{s} }

func (r *invoiceRepo) Create(inv *entity.Invoice) error {
	// Unicidad por venta, como la constraint de la base.
	if _, exists := r.s.invoiceBySale[inv.SaleID]; exists {
		return domain.ErrDuplicateInvoice
	}
	r.s.invoices[inv.ID] = *inv
	r.s.invoiceBySale[inv.SaleID] = inv.ID
	return nil
}

func (r *invoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := inv
	return &cp, nil
}

func (r *invoiceRepo) GetBySaleID(saleID string) (*entity.Invoice, error) {
	id, ok := r.s.invoiceBySale[saleID]
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *invoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		cp := inv
		out = append(out, &cp)
	}
	return out, nil
}

type seriesRepo struct{ s *MemStore }

// SeriesRepo devuelve el contador de series fuera de transacción.
func (s *MemStore) SeriesRepo() repository.InvoiceSeriesRepository { return &seriesRepo{s} }

func (r *seriesRepo) NextNumber(pointOfSale, invoiceType string) (int64, error) {
	key := pointOfSale + "|" + invoiceType
	r.s.series[key]++
	return r.s.series[key], nil
}

// LastNumber devuelve el último número emitido de una serie (para asserts).
func (s *MemStore) LastNumber(pointOfSale, invoiceType string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series[pointOfSale+"|"+invoiceType]
}

// ── helpers de armado de escenarios ──────────────────────────────────────────

// SeedProduct inserta un producto directamente en el almacén.
func (s *MemStore) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// SeedCustomer inserta un cliente directamente en el almacén.
func (s *MemStore) SeedCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

// CountMovements cuenta los movimientos registrados de un producto.
func (s *MemStore) CountMovements(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n
}

// CountSales cuenta las ventas persistidas.
func (s *MemStore) CountSales() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

// CountCreditEntries cuenta las entradas del libro de crédito de un cliente.
func (s *MemStore) CountCreditEntries(customerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.creditEntries {
		if e.CustomerID == customerID {
			n++
		}
	}
	return n
}
