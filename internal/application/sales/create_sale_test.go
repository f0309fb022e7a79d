package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-backoffice/internal/application/credit"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/application/sales"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/testutil"
)

const testUserID = "user-1"

func newFixture(t *testing.T) (*sales.SaleUseCase, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	invUC := inventory.NewLedgerUseCase(store, store.MovementRepo())
	credUC := credit.NewLedgerUseCase(store, store.CreditRepo())
	uc := sales.NewSaleUseCase(store, invUC, credUC, store.SaleRepo(), store.CustomerRepo())
	return uc, store
}

func seedProduct(store *testutil.MemStore, id string, price string, stock int64, tracks bool) {
	store.SeedProduct(entity.Product{
		ID:              id,
		SKU:             "SKU-" + id,
		Name:            "Producto " + id,
		Price:           decimal.RequireFromString(price),
		TaxRate:         decimal.RequireFromString("0.21"),
		StockQuantity:   decimal.NewFromInt(stock),
		TracksInventory: tracks,
		CreatedAt:       time.Now(),
	})
}

func seedCustomer(store *testutil.MemStore, id string, limit, balance int64) {
	store.SeedCustomer(entity.Customer{
		ID:            id,
		Name:          "Cliente " + id,
		TaxID:         "20-0000000-" + id,
		TaxCondition:  entity.TaxConditionConsumidorFinal,
		CreditLimit:   decimal.NewFromInt(limit),
		CreditBalance: decimal.NewFromInt(balance),
		CreatedAt:     time.Now(),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta de contado
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_ContadoDescuentaStock(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "10.50", 5, true)

	sale, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items:       []sales.ItemInput{{ProductID: "p1", Quantity: decimal.NewFromInt(3)}},
		PaymentType: entity.PaymentTypeCash,
		UserID:      testUserID,
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("31.50")))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "SKU-p1", sale.Items[0].ProductSKU)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.50")))

	// Stock descontado y movimiento registrado con referencia a la venta.
	product, _ := store.ProductRepo().GetByID("p1")
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(2)))
	movs, _ := store.MovementRepo().ListByProduct("p1", nil, nil, 10, 0)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSALE, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(-3)))
	assert.Equal(t, sale.ID, movs[0].ReferenceID)
}

func TestCreateSale_VariosItems(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "100.00", 10, true)
	seedProduct(store, "p2", "50.00", 10, true)

	sale, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items: []sales.ItemInput{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(1)},
		},
		PaymentType: entity.PaymentTypeCard,
		UserID:      testUserID,
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("250.00")))
	assert.Len(t, sale.Items, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: ningún efecto parcial sobrevive a un fallo
// ──────────────────────────────────────────────────────────────────────────────

// TestCreateSale_StockInsuficienteRevierteTodo arma una venta de dos ítems
// donde el segundo no tiene stock: el descuento ya aplicado al primero debe
// revertirse junto con todo lo demás.
func TestCreateSale_StockInsuficienteRevierteTodo(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "100.00", 10, true)
	seedProduct(store, "p2", "50.00", 1, true)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items: []sales.ItemInput{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(5)},
		},
		PaymentType: entity.PaymentTypeCash,
		UserID:      testUserID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p1, _ := store.ProductRepo().GetByID("p1")
	p2, _ := store.ProductRepo().GetByID("p2")
	assert.True(t, p1.StockQuantity.Equal(decimal.NewFromInt(10)), "el descuento del primer ítem debe revertirse")
	assert.True(t, p2.StockQuantity.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 0, store.CountMovements("p1"))
	assert.Equal(t, 0, store.CountSales())
}

func TestCreateSale_ProductoInexistenteRevierteTodo(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "100.00", 10, true)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items: []sales.ItemInput{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2)},
			{ProductID: "fantasma", Quantity: decimal.NewFromInt(1)},
		},
		PaymentType: entity.PaymentTypeCash,
		UserID:      testUserID,
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	p1, _ := store.ProductRepo().GetByID("p1")
	assert.True(t, p1.StockQuantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 0, store.CountMovements("p1"))
	assert.Equal(t, 0, store.CountSales())
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta a crédito
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_CreditoDebitaCuentaCorriente(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "100.00", 10, true)
	seedCustomer(store, "c1", 1000, 0)

	sale, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items:        []sales.ItemInput{{ProductID: "p1", Quantity: decimal.NewFromInt(3)}},
		CustomerID:   "c1",
		IsCreditSale: true,
		PaymentType:  entity.PaymentTypeCredit,
		UserID:       testUserID,
	})
	require.NoError(t, err)

	customer, _ := store.CustomerRepo().GetByID("c1")
	assert.True(t, customer.CreditBalance.Equal(decimal.RequireFromString("300.00")))

	// La entrada del libro referencia la venta.
	entries, _ := store.CreditRepo().ListByCustomer("c1", 10, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, sale.ID, entries[0].ReferenceID)
	assert.True(t, entries[0].Amount.Equal(sale.Total))
}

// TestCreateSale_LimiteDeCreditoRevierteStock es el escenario clave de
// atomicidad cruzada: el débito falla por límite y los movimientos de stock ya
// aplicados dentro de la misma transacción deben desaparecer.
func TestCreateSale_LimiteDeCreditoRevierteStock(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "150.00", 10, true)
	seedCustomer(store, "c1", 100, 0) // límite 100, la venta sale 150

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items:        []sales.ItemInput{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
		CustomerID:   "c1",
		IsCreditSale: true,
		PaymentType:  entity.PaymentTypeCredit,
		UserID:       testUserID,
	})
	require.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	product, _ := store.ProductRepo().GetByID("p1")
	customer, _ := store.CustomerRepo().GetByID("c1")
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(10)), "el stock debe quedar intacto")
	assert.True(t, customer.CreditBalance.IsZero())
	assert.Equal(t, 0, store.CountMovements("p1"))
	assert.Equal(t, 0, store.CountCreditEntries("c1"))
	assert.Equal(t, 0, store.CountSales())
}

func TestCreateSale_OverridesExplicitos(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "150.00", 0, true)
	seedCustomer(store, "c1", 100, 0)

	sale, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items:              []sales.ItemInput{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
		CustomerID:         "c1",
		IsCreditSale:       true,
		PaymentType:        entity.PaymentTypeCredit,
		UserID:             testUserID,
		AllowNegativeStock: true,
		AllowOverdraft:     true,
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	product, _ := store.ProductRepo().GetByID("p1")
	customer, _ := store.CustomerRepo().GetByID("c1")
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(-1)))
	assert.True(t, customer.CreditBalance.Equal(decimal.RequireFromString("150.00")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Congelamiento de precios
// ──────────────────────────────────────────────────────────────────────────────

// TestCreateSale_PreciosCongelados cambia el precio del catálogo después de la
// venta y verifica que la venta conserva el precio del momento.
func TestCreateSale_PreciosCongelados(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "100.00", 10, true)

	sale, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items:       []sales.ItemInput{{ProductID: "p1", Quantity: decimal.NewFromInt(2)}},
		PaymentType: entity.PaymentTypeCash,
		UserID:      testUserID,
	})
	require.NoError(t, err)

	// Suba de precio posterior.
	product, _ := store.ProductRepo().GetByID("p1")
	product.Price = decimal.RequireFromString("999.99")
	require.NoError(t, store.ProductRepo().Create(product))

	got, err := uc.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, got.Total.Equal(decimal.RequireFromString("200.00")))
}

func TestCreateSale_ProductoSinControlDeStock(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "svc", "500.00", 0, false)

	sale, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items:       []sales.ItemInput{{ProductID: "svc", Quantity: decimal.NewFromInt(1)}},
		PaymentType: entity.PaymentTypeCash,
		UserID:      testUserID,
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, 0, store.CountMovements("svc"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_Validaciones(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", "100.00", 10, true)
	seedCustomer(store, "c1", 1000, 0)

	item := sales.ItemInput{ProductID: "p1", Quantity: decimal.NewFromInt(1)}
	cases := []struct {
		name  string
		input sales.CreateSaleInput
	}{
		{"sin items", sales.CreateSaleInput{PaymentType: entity.PaymentTypeCash, UserID: testUserID}},
		{"sin usuario", sales.CreateSaleInput{Items: []sales.ItemInput{item}, PaymentType: entity.PaymentTypeCash}},
		{"pago desconocido", sales.CreateSaleInput{Items: []sales.ItemInput{item}, PaymentType: "TRUEQUE", UserID: testUserID}},
		{"credito sin cliente", sales.CreateSaleInput{Items: []sales.ItemInput{item}, IsCreditSale: true, PaymentType: entity.PaymentTypeCredit, UserID: testUserID}},
		{"credito con pago contado", sales.CreateSaleInput{Items: []sales.ItemInput{item}, CustomerID: "c1", IsCreditSale: true, PaymentType: entity.PaymentTypeCash, UserID: testUserID}},
		{"pago CREDIT sin marcar credito", sales.CreateSaleInput{Items: []sales.ItemInput{item}, CustomerID: "c1", PaymentType: entity.PaymentTypeCredit, UserID: testUserID}},
		{"cantidad cero", sales.CreateSaleInput{Items: []sales.ItemInput{{ProductID: "p1", Quantity: decimal.Zero}}, PaymentType: entity.PaymentTypeCash, UserID: testUserID}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := uc.CreateSale(context.Background(), c.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, store.CountSales())
}

func TestCreateSale_ClienteInexistente(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		Items:        []sales.ItemInput{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
		CustomerID:   "nope",
		IsCreditSale: true,
		PaymentType:  entity.PaymentTypeCredit,
		UserID:       testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
