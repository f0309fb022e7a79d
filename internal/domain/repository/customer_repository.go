package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para clientes.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar el
// read-modify-write del saldo. UpdateBalance solo debe llamarse desde el
// libro de crédito.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTaxID(taxID string) (*entity.Customer, error)
	GetForUpdate(id string) (*entity.Customer, error)
	UpdateBalance(id string, balance decimal.Decimal) error
	List(limit, offset int) ([]*entity.Customer, error)
}
