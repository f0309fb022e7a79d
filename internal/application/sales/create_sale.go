package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/fiscal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// SaleUseCase convierte un carrito en una venta durable y consistente:
// congela precios, descuenta stock vía el libro de inventario, debita la
// cuenta corriente si es venta a crédito y persiste la venta, todo dentro de
// una sola transacción. Ante cualquier error no sobrevive ningún efecto.
type SaleUseCase struct {
	txRunner     TxRunner
	inventoryUC  InventoryLedger
	creditUC     CreditLedger
	saleRepo     repository.SaleRepository     // lecturas fuera de tx
	customerRepo repository.CustomerRepository // validación previa
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	inventoryUC InventoryLedger,
	creditUC CreditLedger,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		inventoryUC:  inventoryUC,
		creditUC:     creditUC,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

// ItemInput una línea del carrito.
type ItemInput struct {
	ProductID string
	Quantity  decimal.Decimal // > 0
}

// CreateSaleInput entrada de CreateSale.
type CreateSaleInput struct {
	Items              []ItemInput
	CustomerID         string // requerido si IsCreditSale
	IsCreditSale       bool
	PaymentType        string
	UserID             string
	AllowNegativeStock bool // override explícito del invariante de stock
	AllowOverdraft     bool // override explícito del límite de crédito
}

var validPaymentTypes = map[string]bool{
	entity.PaymentTypeCash:     true,
	entity.PaymentTypeCard:     true,
	entity.PaymentTypeTransfer: true,
	entity.PaymentTypeCredit:   true,
}

// CreateSale ejecuta el algoritmo de venta dentro de una transacción:
// resolver productos, congelar precios, descontar stock ítem por ítem,
// debitar la cuenta corriente si corresponde y persistir venta + ítems.
// El orden importa: movimientos antes del débito, débito antes de la venta,
// de modo que un observador nunca vea un saldo debitado sin su venta.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (*entity.Sale, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}

	// Validación previa del cliente, fuera de la transacción (solo lectura).
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, in.CustomerID)
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		customerRepo repository.CustomerRepository,
		creditRepo repository.CreditLedgerRepository,
		saleRepo repository.SaleRepository,
		_ repository.InvoiceRepository,
	) error {
		var total decimal.Decimal
		items := make([]*entity.SaleItem, 0, len(in.Items))

		for _, it := range in.Items {
			// 1) Resolver el producto; desconocido aborta sin efectos parciales.
			product, err := productRepo.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, it.ProductID)
			}

			// 2) Descontar stock vía el libro de inventario (misma tx).
			// Productos sin control de stock son no-ops dentro del libro.
			if _, err := uc.inventoryUC.ApplyMovementInTx(productRepo, movRepo, inventory.MovementInTx{
				ProductID:     product.ID,
				Type:          entity.MovementTypeSALE,
				Quantity:      it.Quantity.Neg(),
				UserID:        in.UserID,
				ReferenceID:   saleID,
				AllowNegative: in.AllowNegativeStock,
				Now:           now,
			}); err != nil {
				return err
			}

			// 3) Congelar precio, alícuota y descripción del producto vivo.
			subtotal := fiscal.RoundMoney(it.Quantity.Mul(product.Price))
			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ProductID:   product.ID,
				ProductSKU:  product.SKU,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				UnitPrice:   product.Price,
				TaxRate:     product.TaxRate,
				Subtotal:    subtotal,
			})
			total = total.Add(subtotal)
		}

		// 4) Venta a crédito: debitar la cuenta corriente. Un fallo acá
		// revierte también los movimientos de stock ya aplicados.
		if in.IsCreditSale {
			if _, err := uc.creditUC.DebitInTx(customerRepo, creditRepo,
				in.CustomerID, total, saleID, "venta a crédito", in.UserID,
				in.AllowOverdraft, now); err != nil {
				return err
			}
		}

		// 5) Persistir la venta y sus ítems.
		sale = &entity.Sale{
			ID:           saleID,
			Date:         now,
			CustomerID:   in.CustomerID,
			IsCreditSale: in.IsCreditSale,
			PaymentType:  in.PaymentType,
			Status:       entity.SaleStatusCompleted,
			Total:        total,
			CreatedBy:    in.UserID,
			CreatedAt:    now,
			Items:        items,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// validate chequea la forma de la entrada antes de abrir la transacción.
func (uc *SaleUseCase) validate(in CreateSaleInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: la venta no tiene ítems", domain.ErrInvalidInput)
	}
	if in.UserID == "" {
		return fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	if !validPaymentTypes[in.PaymentType] {
		return fmt.Errorf("%w: tipo de pago desconocido %q", domain.ErrInvalidInput, in.PaymentType)
	}
	if in.IsCreditSale {
		if in.CustomerID == "" {
			return fmt.Errorf("%w: una venta a crédito requiere cliente", domain.ErrInvalidInput)
		}
		if in.PaymentType != entity.PaymentTypeCredit {
			return fmt.Errorf("%w: una venta a crédito debe pagarse con CREDIT", domain.ErrInvalidInput)
		}
	} else if in.PaymentType == entity.PaymentTypeCredit {
		return fmt.Errorf("%w: pago CREDIT requiere marcar la venta como venta a crédito", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return fmt.Errorf("%w: ítem sin producto", domain.ErrInvalidInput)
		}
		if !it.Quantity.IsPositive() {
			return fmt.Errorf("%w: la cantidad debe ser mayor que cero (producto %s)", domain.ErrInvalidInput, it.ProductID)
		}
	}
	return nil
}

// GetSale devuelve una venta con sus ítems.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSaleNotFound, id)
	}
	return sale, nil
}
