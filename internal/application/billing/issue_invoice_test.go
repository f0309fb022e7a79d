package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-backoffice/internal/application/billing"
	"github.com/tu-usuario/pos-backoffice/internal/application/credit"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/application/sales"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/testutil"
)

const (
	testUserID = "user-1"
	testPOS    = "0001"
)

type fixture struct {
	store  *testutil.MemStore
	saleUC *sales.SaleUseCase
	uc     *billing.IssueInvoiceUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewMemStore()
	invUC := inventory.NewLedgerUseCase(store, store.MovementRepo())
	credUC := credit.NewLedgerUseCase(store, store.CreditRepo())
	saleUC := sales.NewSaleUseCase(store, invUC, credUC, store.SaleRepo(), store.CustomerRepo())
	uc := billing.NewIssueInvoiceUseCase(store, store.InvoiceRepo(), store.SaleRepo())
	return &fixture{store: store, saleUC: saleUC, uc: uc}
}

func (f *fixture) seedProduct(id, price, taxRate string) {
	f.store.SeedProduct(entity.Product{
		ID:              id,
		SKU:             "SKU-" + id,
		Name:            "Producto " + id,
		Price:           decimal.RequireFromString(price),
		TaxRate:         decimal.RequireFromString(taxRate),
		StockQuantity:   decimal.NewFromInt(100),
		TracksInventory: true,
		CreatedAt:       time.Now(),
	})
}

func (f *fixture) seedCustomer(id, taxCondition string) {
	f.store.SeedCustomer(entity.Customer{
		ID:            id,
		Name:          "Cliente " + id,
		TaxID:         "30-0000000-" + id,
		TaxCondition:  taxCondition,
		CreditLimit:   decimal.NewFromInt(100000),
		CreditBalance: decimal.Zero,
		CreatedAt:     time.Now(),
	})
}

// newSale crea una venta de contado asociada a un cliente.
func (f *fixture) newSale(t *testing.T, customerID string, items ...sales.ItemInput) *entity.Sale {
	t.Helper()
	sale, err := f.saleUC.CreateSale(context.Background(), sales.CreateSaleInput{
		Items:       items,
		CustomerID:  customerID,
		PaymentType: entity.PaymentTypeCash,
		UserID:      testUserID,
	})
	require.NoError(t, err)
	return sale
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

// TestIssueInvoice_FacturaA verifica el vector completo: cliente responsable
// inscripto, IVA 21% sobre neto de 430.00 → 90.30 de impuesto y 520.30 final.
func TestIssueInvoice_FacturaA(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("c1", entity.TaxConditionResponsableInscripto)
	f.seedProduct("p1", "100.00", "0.21")
	f.seedProduct("p2", "110.00", "0.21")
	sale := f.newSale(t, "c1",
		sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)},
		sales.ItemInput{ProductID: "p2", Quantity: decimal.NewFromInt(3)},
	)

	invoice, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID:      sale.ID,
		PointOfSale: testPOS,
		UserID:      testUserID,
	})
	require.NoError(t, err)
	require.NotNil(t, invoice)

	assert.Equal(t, entity.InvoiceTypeA, invoice.Type)
	assert.Equal(t, testPOS, invoice.PointOfSale)
	assert.Equal(t, int64(1), invoice.Number)
	assert.True(t, invoice.NetTotal.Equal(decimal.RequireFromString("430.00")), "neto: %s", invoice.NetTotal)
	assert.True(t, invoice.TaxTotal.Equal(decimal.RequireFromString("90.30")), "IVA: %s", invoice.TaxTotal)
	assert.True(t, invoice.GrandTotal.Equal(decimal.RequireFromString("520.30")), "total: %s", invoice.GrandTotal)
	assert.True(t, invoice.GrandTotal.Equal(invoice.NetTotal.Add(invoice.TaxTotal)))

	// Snapshot del cliente al momento de emitir.
	assert.Equal(t, "Cliente c1", invoice.CustomerName)
	assert.Equal(t, "30-0000000-c1", invoice.CustomerTaxID)
	assert.Equal(t, entity.TaxConditionResponsableInscripto, invoice.CustomerTaxCondition)
}

func TestIssueInvoice_FacturaB(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("c1", entity.TaxConditionConsumidorFinal)
	f.seedProduct("p1", "100.00", "0.21")
	sale := f.newSale(t, "c1", sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)})

	invoice, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceTypeB, invoice.Type)
	assert.True(t, invoice.GrandTotal.Equal(decimal.RequireFromString("121.00")))
}

// Alícuotas mixtas: el IVA se calcula y redondea por línea, no sobre el total.
func TestIssueInvoice_AlicuotasMixtas(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("c1", entity.TaxConditionResponsableInscripto)
	f.seedProduct("p21", "100.00", "0.21")
	f.seedProduct("p105", "200.00", "0.105")
	sale := f.newSale(t, "c1",
		sales.ItemInput{ProductID: "p21", Quantity: decimal.NewFromInt(1)},
		sales.ItemInput{ProductID: "p105", Quantity: decimal.NewFromInt(1)},
	)

	invoice, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID,
	})
	require.NoError(t, err)
	assert.True(t, invoice.NetTotal.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, invoice.TaxTotal.Equal(decimal.RequireFromString("42.00"))) // 21.00 + 21.00
	assert.True(t, invoice.GrandTotal.Equal(decimal.RequireFromString("342.00")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Unicidad y numeración
// ──────────────────────────────────────────────────────────────────────────────

// TestIssueInvoice_Duplicada verifica la unicidad por venta y que el intento
// fallido no consume ningún número de serie.
func TestIssueInvoice_Duplicada(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("c1", entity.TaxConditionConsumidorFinal)
	f.seedProduct("p1", "100.00", "0.21")
	sale := f.newSale(t, "c1", sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)})

	in := billing.IssueInvoiceInput{SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID}
	_, err := f.uc.IssueInvoice(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, int64(1), f.store.LastNumber(testPOS, entity.InvoiceTypeB))

	_, err = f.uc.IssueInvoice(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrDuplicateInvoice)
	assert.Equal(t, int64(1), f.store.LastNumber(testPOS, entity.InvoiceTypeB),
		"el intento duplicado no debe consumir números de la serie")
}

func TestIssueInvoice_NumeracionMonotonaPorSerie(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("ri", entity.TaxConditionResponsableInscripto)
	f.seedCustomer("cf", entity.TaxConditionConsumidorFinal)
	f.seedProduct("p1", "100.00", "0.21")

	issue := func(customerID string) *entity.Invoice {
		sale := f.newSale(t, customerID, sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)})
		invoice, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
			SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID,
		})
		require.NoError(t, err)
		return invoice
	}

	// Cada serie (punto de venta, tipo) numera de forma independiente y
	// contigua desde 1.
	for i := 1; i <= 3; i++ {
		assert.Equal(t, int64(i), issue("cf").Number)
	}
	for i := 1; i <= 2; i++ {
		assert.Equal(t, int64(i), issue("ri").Number)
	}
	assert.Equal(t, int64(3), f.store.LastNumber(testPOS, entity.InvoiceTypeB))
	assert.Equal(t, int64(2), f.store.LastNumber(testPOS, entity.InvoiceTypeA))
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueInvoice_VentaSinCliente(t *testing.T) {
	f := newFixture(t)
	f.seedProduct("p1", "100.00", "0.21")
	sale := f.newSale(t, "", sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)})

	_, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID,
	})
	require.ErrorIs(t, err, domain.ErrCustomerRequired)
	assert.Equal(t, int64(0), f.store.LastNumber(testPOS, entity.InvoiceTypeB))
}

func TestIssueInvoice_VentaAnulada(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("c1", entity.TaxConditionConsumidorFinal)
	f.seedProduct("p1", "100.00", "0.21")
	sale := f.newSale(t, "c1", sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)})

	_, err := f.saleUC.VoidSale(context.Background(), sale.ID, testUserID)
	require.NoError(t, err)

	_, err = f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestIssueInvoice_VentaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID: "nope", PointOfSale: testPOS, UserID: testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestIssueInvoice_EntradaInvalida(t *testing.T) {
	f := newFixture(t)

	for _, in := range []billing.IssueInvoiceInput{
		{PointOfSale: testPOS, UserID: testUserID},
		{SaleID: "s1", UserID: testUserID},
		{SaleID: "s1", PointOfSale: testPOS},
	} {
		_, err := f.uc.IssueInvoice(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inmutabilidad
// ──────────────────────────────────────────────────────────────────────────────

// TestIssueInvoice_PreciosCongelados sube el precio del catálogo entre la
// venta y la facturación: la factura debe calcularse sobre los precios
// congelados en la venta.
func TestIssueInvoice_PreciosCongelados(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("c1", entity.TaxConditionConsumidorFinal)
	f.seedProduct("p1", "100.00", "0.21")
	sale := f.newSale(t, "c1", sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(2)})

	product, _ := f.store.ProductRepo().GetByID("p1")
	product.Price = decimal.RequireFromString("500.00")
	require.NoError(t, f.store.ProductRepo().Create(product))

	invoice, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID,
	})
	require.NoError(t, err)
	assert.True(t, invoice.NetTotal.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, invoice.GrandTotal.Equal(decimal.RequireFromString("242.00")))
}

func TestGetInvoice_DevuelveFacturaYVenta(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("c1", entity.TaxConditionConsumidorFinal)
	f.seedProduct("p1", "100.00", "0.21")
	sale := f.newSale(t, "c1", sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)})

	issued, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID,
	})
	require.NoError(t, err)

	invoice, gotSale, err := f.uc.GetInvoice(context.Background(), issued.ID)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, invoice.ID)
	require.NotNil(t, gotSale)
	assert.Equal(t, sale.ID, gotSale.ID)

	_, _, err = f.uc.GetInvoice(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

// El formato legal del número es PPPP-NNNNNNNN.
func TestInvoice_NumeroFormateado(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer("c1", entity.TaxConditionConsumidorFinal)
	f.seedProduct("p1", "100.00", "0.21")
	sale := f.newSale(t, "c1", sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)})

	invoice, err := f.uc.IssueInvoice(context.Background(), billing.IssueInvoiceInput{
		SaleID: sale.ID, PointOfSale: testPOS, UserID: testUserID,
	})
	require.NoError(t, err)
	assert.Equal(t, "0001-00000001", fmt.Sprintf("%s-%08d", invoice.PointOfSale, invoice.Number))
}
