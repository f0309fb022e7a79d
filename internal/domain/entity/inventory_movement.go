package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeSALE       = "SALE"       // salida por venta
	MovementTypeRETURN     = "RETURN"     // devolución (o anulación de venta)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
	MovementTypeRECEIPT    = "RECEIPT"    // ingreso de mercadería
)

// InventoryMovement es una entrada del libro de inventario: solo se inserta,
// nunca se actualiza ni elimina. Invariante: la suma de Quantity de todos los
// movimientos de un producto es igual a su StockQuantity actual.
type InventoryMovement struct {
	ID          string
	ProductID   string
	Type        string
	Quantity    decimal.Decimal // firmada: negativa salida, positiva entrada
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string // usuario que originó el movimiento
	ReferenceID string // documento correlacionado (ej: ID de la venta)
	Note        string
}
