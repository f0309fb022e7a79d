package credit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// LedgerUseCase es el libro de crédito de clientes: registra débitos (venta a
// crédito) y pagos como entradas inmutables, manteniendo el saldo
// materializado en la misma transacción. Es el único componente autorizado a
// mutar el saldo de un cliente.
type LedgerUseCase struct {
	txRunner   TxRunner
	creditRepo repository.CreditLedgerRepository // lecturas fuera de tx
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, creditRepo repository.CreditLedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, creditRepo: creditRepo}
}

// RecordDebit registra un débito aislado (aumenta lo adeudado) en su propia
// transacción. El caller decide con allowOverdraft si autoriza superar el
// límite de crédito.
func (uc *LedgerUseCase) RecordDebit(ctx context.Context, customerID string, amount decimal.Decimal, referenceID, note, userID string, allowOverdraft bool) (*entity.CreditEntry, error) {
	var entry *entity.CreditEntry
	err := uc.txRunner.RunCredit(ctx, func(
		customerRepo repository.CustomerRepository,
		creditRepo repository.CreditLedgerRepository,
	) error {
		e, err := uc.DebitInTx(customerRepo, creditRepo, customerID, amount, referenceID, note, userID, allowOverdraft, time.Now())
		entry = e
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordPayment registra un pago del cliente (reduce lo adeudado) en su
// propia transacción.
func (uc *LedgerUseCase) RecordPayment(ctx context.Context, customerID string, amount decimal.Decimal, referenceID, note, userID string) (*entity.CreditEntry, error) {
	var entry *entity.CreditEntry
	err := uc.txRunner.RunCredit(ctx, func(
		customerRepo repository.CustomerRepository,
		creditRepo repository.CreditLedgerRepository,
	) error {
		e, err := uc.CreditInTx(customerRepo, creditRepo, customerID, amount, referenceID, note, userID, time.Now())
		entry = e
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DebitInTx aplica un débito usando los repositorios del caller (misma
// transacción). Bloquea la fila del cliente, verifica el límite de crédito y
// persiste entrada + saldo como un solo paso.
func (uc *LedgerUseCase) DebitInTx(
	customerRepo repository.CustomerRepository,
	creditRepo repository.CreditLedgerRepository,
	customerID string, amount decimal.Decimal,
	referenceID, note, userID string,
	allowOverdraft bool, now time.Time,
) (*entity.CreditEntry, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: el débito debe ser mayor que cero (recibido %s)", domain.ErrInvalidAmount, amount)
	}
	customer, err := customerRepo.GetForUpdate(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, customerID)
	}
	newBalance := customer.CreditBalance.Add(amount)
	if newBalance.GreaterThan(customer.CreditLimit) && !allowOverdraft {
		return nil, fmt.Errorf("%w: límite %s, saldo resultante %s",
			domain.ErrCreditLimitExceeded, customer.CreditLimit, newBalance)
	}
	return uc.appendEntry(customerRepo, creditRepo, customer, amount, newBalance, referenceID, note, userID, now)
}

// CreditInTx aplica un pago (entrada negativa) usando los repositorios del
// caller. El saldo nunca queda negativo: un pago mayor a lo adeudado se
// rechaza con PaymentExceedsBalance.
func (uc *LedgerUseCase) CreditInTx(
	customerRepo repository.CustomerRepository,
	creditRepo repository.CreditLedgerRepository,
	customerID string, amount decimal.Decimal,
	referenceID, note, userID string, now time.Time,
) (*entity.CreditEntry, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: el pago debe ser mayor que cero (recibido %s)", domain.ErrInvalidAmount, amount)
	}
	customer, err := customerRepo.GetForUpdate(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, customerID)
	}
	if amount.GreaterThan(customer.CreditBalance) {
		return nil, fmt.Errorf("%w: saldo adeudado %s, pago %s",
			domain.ErrPaymentExceedsBalance, customer.CreditBalance, amount)
	}
	newBalance := customer.CreditBalance.Sub(amount)
	return uc.appendEntry(customerRepo, creditRepo, customer, amount.Neg(), newBalance, referenceID, note, userID, now)
}

// appendEntry persiste el nuevo saldo y la entrada del libro.
func (uc *LedgerUseCase) appendEntry(
	customerRepo repository.CustomerRepository,
	creditRepo repository.CreditLedgerRepository,
	customer *entity.Customer,
	signedAmount, newBalance decimal.Decimal,
	referenceID, note, userID string, now time.Time,
) (*entity.CreditEntry, error) {
	if err := customerRepo.UpdateBalance(customer.ID, newBalance); err != nil {
		return nil, err
	}
	entry := &entity.CreditEntry{
		ID:          uuid.New().String(),
		CustomerID:  customer.ID,
		Amount:      signedAmount,
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   userID,
		ReferenceID: referenceID,
		Note:        note,
	}
	if err := creditRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries lista el libro de crédito de un cliente (lectura para reportes).
func (uc *LedgerUseCase) ListEntries(ctx context.Context, customerID string, limit, offset int) ([]*entity.CreditEntry, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.creditRepo.ListByCustomer(customerID, limit, offset)
}
