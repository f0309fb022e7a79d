package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/testutil"
)

const testUserID = "user-1"

func newFixture(t *testing.T) (*inventory.LedgerUseCase, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	uc := inventory.NewLedgerUseCase(store, store.MovementRepo())
	return uc, store
}

func seedProduct(store *testutil.MemStore, id string, stock int64, tracks bool) {
	store.SeedProduct(entity.Product{
		ID:              id,
		SKU:             "SKU-" + id,
		Name:            "Producto " + id,
		Price:           decimal.NewFromInt(100),
		TaxRate:         decimal.RequireFromString("0.21"),
		StockQuantity:   decimal.NewFromInt(stock),
		TracksInventory: tracks,
		CreatedAt:       time.Now(),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos básicos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_IngresoSumaStock(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", 10, true)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeRECEIPT,
		Quantity:  decimal.NewFromInt(5),
		UserID:    testUserID,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(5)))

	product, err := store.ProductRepo().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(15)))
}

func TestRegisterMovement_SalidaRestaStock(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", 10, true)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID:   "p1",
		Type:        entity.MovementTypeSALE,
		Quantity:    decimal.NewFromInt(-4),
		UserID:      testUserID,
		ReferenceID: "venta-1",
	})
	require.NoError(t, err)

	product, _ := store.ProductRepo().GetByID("p1")
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(6)))
}

// TestRegisterMovement_ConservacionDeStock verifica el invariante central del
// libro: la suma de movimientos firmados es igual al stock materializado.
func TestRegisterMovement_ConservacionDeStock(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", 0, true)

	movs := []struct {
		kind string
		qty  int64
	}{
		{entity.MovementTypeRECEIPT, 20},
		{entity.MovementTypeSALE, -7},
		{entity.MovementTypeADJUSTMENT, -1},
		{entity.MovementTypeRETURN, 2},
	}
	for _, m := range movs {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			ProductID: "p1",
			Type:      m.kind,
			Quantity:  decimal.NewFromInt(m.qty),
			UserID:    testUserID,
		})
		require.NoError(t, err)
	}

	sum, err := store.MovementRepo().SumByProduct("p1")
	require.NoError(t, err)
	product, _ := store.ProductRepo().GetByID("p1")
	assert.True(t, sum.Equal(product.StockQuantity),
		"suma de movimientos %s debe igualar stock %s", sum, product.StockQuantity)
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(14)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de no-negatividad
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_StockInsuficiente(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", 3, true)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeSALE,
		Quantity:  decimal.NewFromInt(-5),
		UserID:    testUserID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	// El mensaje debe incluir las cantidades para mostrar al usuario.
	assert.Contains(t, err.Error(), "disponible 3")
	assert.Contains(t, err.Error(), "solicitado 5")

	// Sin efectos: ni stock ni movimientos.
	product, _ := store.ProductRepo().GetByID("p1")
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 0, store.CountMovements("p1"))
}

func TestRegisterMovement_OverrideStockNegativo(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", 3, true)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID:     "p1",
		Type:          entity.MovementTypeSALE,
		Quantity:      decimal.NewFromInt(-5),
		UserID:        testUserID,
		AllowNegative: true,
	})
	require.NoError(t, err)

	product, _ := store.ProductRepo().GetByID("p1")
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(-2)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos sin control de stock
// ──────────────────────────────────────────────────────────────────────────────

// TestRegisterMovement_ProductoSinControlDeStock verifica el no-op sintético:
// éxito sin efectos, para que los callers no traten aparte a los servicios.
func TestRegisterMovement_ProductoSinControlDeStock(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "svc", 0, false)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "svc",
		Type:      entity.MovementTypeSALE,
		Quantity:  decimal.NewFromInt(-3),
		UserID:    testUserID,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.True(t, mov.Quantity.IsZero(), "el movimiento sintético debe ser de efecto cero")
	assert.Equal(t, 0, store.CountMovements("svc"), "no debe persistirse ningún movimiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_Validaciones(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", 10, true)

	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"sin producto", inventory.MovementInput{Type: entity.MovementTypeRECEIPT, Quantity: decimal.NewFromInt(1), UserID: testUserID}},
		{"sin usuario", inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeRECEIPT, Quantity: decimal.NewFromInt(1)}},
		{"cantidad cero", inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeADJUSTMENT, Quantity: decimal.Zero, UserID: testUserID}},
		{"venta positiva", inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeSALE, Quantity: decimal.NewFromInt(2), UserID: testUserID}},
		{"ingreso negativo", inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeRECEIPT, Quantity: decimal.NewFromInt(-2), UserID: testUserID}},
		{"tipo desconocido", inventory.MovementInput{ProductID: "p1", Type: "TELEPORT", Quantity: decimal.NewFromInt(1), UserID: testUserID}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(context.Background(), c.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "nope",
		Type:      entity.MovementTypeRECEIPT,
		Quantity:  decimal.NewFromInt(1),
		UserID:    testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListMovements_FiltraPorProducto(t *testing.T) {
	uc, store := newFixture(t)
	seedProduct(store, "p1", 10, true)
	seedProduct(store, "p2", 10, true)

	for _, id := range []string{"p1", "p2", "p1"} {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			ProductID: id,
			Type:      entity.MovementTypeRECEIPT,
			Quantity:  decimal.NewFromInt(1),
			UserID:    testUserID,
		})
		require.NoError(t, err)
	}

	list, err := uc.ListMovements(context.Background(), "p1", nil, nil, 50, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
