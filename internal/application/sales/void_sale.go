package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/application/inventory"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// VoidSale anula una venta: restituye el stock con movimientos RETURN,
// revierte el débito de cuenta corriente si fue venta a crédito y marca la
// venta como VOIDED, todo en una sola transacción. Una venta ya anulada o ya
// facturada no puede anularse.
func (uc *SaleUseCase) VoidSale(ctx context.Context, saleID, userID string) (*entity.Sale, error) {
	if saleID == "" || userID == "" {
		return nil, fmt.Errorf("%w: venta y usuario son requeridos", domain.ErrInvalidInput)
	}

	now := time.Now()
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		customerRepo repository.CustomerRepository,
		creditRepo repository.CreditLedgerRepository,
		saleRepo repository.SaleRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		s, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: %s", domain.ErrSaleNotFound, saleID)
		}
		if s.Status == entity.SaleStatusVoided {
			return fmt.Errorf("%w: la venta ya está anulada", domain.ErrConflict)
		}
		existing, err := invoiceRepo.GetBySaleID(saleID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: una venta facturada no puede anularse", domain.ErrConflict)
		}

		// Restituir stock: un movimiento RETURN por cada ítem de la venta.
		for _, item := range s.Items {
			if _, err := uc.inventoryUC.ApplyMovementInTx(productRepo, movRepo, inventory.MovementInTx{
				ProductID:   item.ProductID,
				Type:        entity.MovementTypeRETURN,
				Quantity:    item.Quantity,
				UserID:      userID,
				ReferenceID: saleID,
				Note:        "anulación de venta",
				Now:         now,
			}); err != nil {
				return err
			}
		}

		// Revertir el débito de cuenta corriente.
		if s.IsCreditSale && s.CustomerID != "" {
			if _, err := uc.creditUC.CreditInTx(customerRepo, creditRepo,
				s.CustomerID, s.Total, saleID, "anulación de venta", userID, now); err != nil {
				return err
			}
		}

		if err := saleRepo.UpdateStatus(saleID, entity.SaleStatusVoided); err != nil {
			return err
		}
		s.Status = entity.SaleStatusVoided
		sale = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
