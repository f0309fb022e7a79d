package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE): es la
// serialización que evita sobreventa entre transacciones concurrentes.
// UpdateStock solo debe llamarse desde el libro de inventario.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(id string, quantity decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
