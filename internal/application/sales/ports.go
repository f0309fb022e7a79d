package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de la transacción de venta, con todos
// los repositorios que la venta toca atados a esa tx. Es el sobre
// transaccional del caso de uso: movimientos de stock, débito de crédito y la
// venta misma se confirman juntos o se revierten juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		customerRepo repository.CustomerRepository,
		creditRepo repository.CreditLedgerRepository,
		saleRepo repository.SaleRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InventoryLedger integra la venta con el libro de inventario dentro de la
// misma transacción. Si devuelve error (ej: stock insuficiente) el caller
// debe abortar y dejar que el TxRunner haga rollback.
type InventoryLedger interface {
	ApplyMovementInTx(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		in inventory.MovementInTx,
	) (*entity.InventoryMovement, error)
}

// CreditLedger integra la venta con el libro de crédito dentro de la misma
// transacción.
type CreditLedger interface {
	DebitInTx(
		customerRepo repository.CustomerRepository,
		creditRepo repository.CreditLedgerRepository,
		customerID string, amount decimal.Decimal,
		referenceID, note, userID string,
		allowOverdraft bool, now time.Time,
	) (*entity.CreditEntry, error)
	CreditInTx(
		customerRepo repository.CustomerRepository,
		creditRepo repository.CreditLedgerRepository,
		customerID string, amount decimal.Decimal,
		referenceID, note, userID string, now time.Time,
	) (*entity.CreditEntry, error)
}
