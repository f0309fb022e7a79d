package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas y sus ítems.
// La venta posee sus ítems (mismo ciclo de vida); GetByID los devuelve
// siempre cargados. UpdateStatus solo admite el pasaje a VOIDED.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera (para anulación y facturación).
	GetForUpdate(id string) (*entity.Sale, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Sale, error)
}
