package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.CreditLedgerRepository = (*CreditLedgerRepo)(nil)

// CreditLedgerRepo implementación del puerto CreditLedgerRepository sobre
// PostgreSQL. Igual que el libro de inventario, es solo-inserción.
type CreditLedgerRepo struct {
	q Querier
}

// NewCreditLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditLedgerRepository(q Querier) *CreditLedgerRepo {
	return &CreditLedgerRepo{q: q}
}

// Create inserta una entrada del libro de crédito.
func (r *CreditLedgerRepo) Create(e *entity.CreditEntry) error {
	query := `
		INSERT INTO credit_entries (id, customer_id, amount, date, created_at, created_by, reference_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.CustomerID, e.Amount, e.Date, e.CreatedAt, e.CreatedBy, e.ReferenceID, e.Note,
	)
	if err != nil {
		return fmt.Errorf("insert credit entry: %w", err)
	}
	return nil
}

// ListByCustomer lista las entradas de un cliente, de la más reciente a la más antigua.
func (r *CreditLedgerRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditEntry, error) {
	query := `
		SELECT id, customer_id, amount, date, created_at, created_by, reference_id, note
		FROM credit_entries
		WHERE customer_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list credit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditEntry
	for rows.Next() {
		var e entity.CreditEntry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.Amount, &e.Date,
			&e.CreatedAt, &e.CreatedBy, &e.ReferenceID, &e.Note); err != nil {
			return nil, fmt.Errorf("scan credit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByCustomer devuelve la suma de montos firmados del cliente (auditoría de
// conservación contra el saldo materializado).
func (r *CreditLedgerRepo) SumByCustomer(customerID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM credit_entries WHERE customer_id = $1`,
		customerID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum credit entries: %w", err)
	}
	return sum, nil
}
