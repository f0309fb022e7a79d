package inventory

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

// LedgerUseCase es el libro de inventario: aplica deltas firmados de stock con
// bloqueo de fila (SELECT FOR UPDATE) y deja un movimiento inmutable por cada
// cambio. Es el único componente autorizado a mutar el stock de un producto.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository // lecturas fuera de tx
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.InventoryMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento aislado (ajustes,
// ingresos de mercadería, devoluciones sueltas).
type MovementInput struct {
	ProductID     string
	Type          string
	Quantity      decimal.Decimal // firmada
	UserID        string
	ReferenceID   string
	Note          string
	AllowNegative bool // habilita stock negativo en forma explícita
}

// MovementInTx es la entrada de ApplyMovementInTx, la variante que corre
// dentro de una transacción abierta por el caller (ej: la venta).
type MovementInTx struct {
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	UserID        string
	ReferenceID   string
	Note          string
	AllowNegative bool
	Now           time.Time
}

// RegisterMovement valida la entrada, abre la transacción y aplica el
// movimiento. Commit si todo ok, Rollback ante cualquier error.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	if input.ProductID == "" || input.UserID == "" {
		return nil, fmt.Errorf("%w: producto y usuario son requeridos", domain.ErrInvalidInput)
	}
	if input.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: la cantidad no puede ser cero", domain.ErrInvalidInput)
	}
	switch input.Type {
	case entity.MovementTypeSALE:
		if !input.Quantity.IsNegative() {
			return nil, fmt.Errorf("%w: una salida por venta debe ser negativa", domain.ErrInvalidInput)
		}
	case entity.MovementTypeRETURN, entity.MovementTypeRECEIPT:
		if !input.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: %s debe ser positivo", domain.ErrInvalidInput, input.Type)
		}
	case entity.MovementTypeADJUSTMENT:
		// cualquier signo
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, input.Type)
	}

	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		m, err := uc.ApplyMovementInTx(productRepo, movRepo, MovementInTx{
			ProductID:     input.ProductID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			UserID:        input.UserID,
			ReferenceID:   input.ReferenceID,
			Note:          input.Note,
			AllowNegative: input.AllowNegative,
			Now:           time.Now(),
		})
		mov = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyMovementInTx aplica un delta de stock usando los repositorios del
// caller (misma transacción). Bloquea la fila del producto, verifica el
// invariante de no-negatividad y persiste stock + movimiento como un solo paso.
// Productos sin control de stock devuelven un movimiento sintético de efecto
// cero sin persistir nada, para que el caller no tenga que tratarlos aparte.
func (uc *LedgerUseCase) ApplyMovementInTx(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	in MovementInTx,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, in.ProductID)
	}

	if !product.TracksInventory {
		return &entity.InventoryMovement{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Type:        in.Type,
			Quantity:    decimal.Zero,
			Date:        in.Now,
			CreatedAt:   in.Now,
			CreatedBy:   in.UserID,
			ReferenceID: in.ReferenceID,
			Note:        in.Note,
		}, nil
	}

	newStock := product.StockQuantity.Add(in.Quantity)
	if newStock.IsNegative() && !in.AllowNegative {
		return nil, fmt.Errorf("%w: producto %s, disponible %s, solicitado %s",
			domain.ErrInsufficientStock, product.SKU, product.StockQuantity, in.Quantity.Abs())
	}

	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Date:        in.Now,
		CreatedAt:   in.Now,
		CreatedBy:   in.UserID,
		ReferenceID: in.ReferenceID,
		Note:        in.Note,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovements lista los movimientos de un producto en un rango de fechas
// (lectura para reportes; nunca muta).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}
