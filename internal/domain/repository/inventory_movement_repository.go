package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// InventoryMovementRepository puerto de persistencia del libro de inventario.
// Solo inserción y lectura: los movimientos nunca se editan retroactivamente.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	// SumByProduct devuelve la suma de cantidades firmadas del producto.
	// Usada para verificar la conservación contra el stock materializado.
	SumByProduct(productID string) (decimal.Decimal, error)
}
