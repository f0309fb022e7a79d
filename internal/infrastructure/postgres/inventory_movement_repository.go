package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del puerto InventoryMovementRepository
// sobre PostgreSQL. El libro es solo-inserción: no hay UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta un movimiento del libro de inventario.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, product_id, type, quantity, date, created_at, created_by, reference_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Date, m.CreatedAt, m.CreatedBy, m.ReferenceID, m.Note,
	)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, con filtro opcional de
// fechas y paginación, del más reciente al más antiguo.
func (r *InventoryMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, date, created_at, created_by, reference_id, note
		FROM inventory_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Date,
			&m.CreatedAt, &m.CreatedBy, &m.ReferenceID, &m.Note); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByProduct devuelve la suma de cantidades firmadas del producto (auditoría
// de conservación contra el stock materializado).
func (r *InventoryMovementRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_movements WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory movements: %w", err)
	}
	return sum, nil
}
