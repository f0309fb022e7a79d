package credit

import (
	"context"

	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del libro de crédito atados a esa tx. Garantiza que la entrada
// del libro y el saldo materializado cambien juntos o no cambien.
type TxRunner interface {
	RunCredit(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		creditRepo repository.CreditLedgerRepository,
	) error) error
}
