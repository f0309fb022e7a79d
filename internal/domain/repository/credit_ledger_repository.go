package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// CreditLedgerRepository puerto de persistencia del libro de crédito.
// Solo inserción y lectura (auditoría).
type CreditLedgerRepository interface {
	Create(entry *entity.CreditEntry) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditEntry, error)
	// SumByCustomer devuelve la suma de montos firmados del cliente.
	// Usada para verificar la conservación contra el saldo materializado.
	SumByCustomer(customerID string) (decimal.Decimal, error)
}
