package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// StockQuantity es el saldo materializado del libro de movimientos: solo lo
// mutan las operaciones del libro de inventario, nunca la venta en forma directa.
// TracksInventory en false marca productos sin control de stock (servicios).
type Product struct {
	ID              string
	SKU             string // código único
	Name            string
	Description     string
	Cost            decimal.Decimal // costo unitario
	Price           decimal.Decimal // precio de venta (neto de IVA)
	TaxRate         decimal.Decimal // fracción: 0, 0.105 (10.5%), 0.21 (21%)
	StockQuantity   decimal.Decimal
	MinStock        decimal.Decimal // umbral de reposición
	TracksInventory bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
