package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products. El stock inicial no se
// carga acá: se registra con un movimiento RECEIPT del libro de inventario.
type CreateProductRequest struct {
	SKU             string          `json:"sku" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description,omitempty"`
	Cost            decimal.Decimal `json:"cost"`
	Price           decimal.Decimal `json:"price"`
	TaxRate         decimal.Decimal `json:"tax_rate"` // fracción: 0.21 = 21%
	MinStock        decimal.Decimal `json:"min_stock"`
	TracksInventory bool            `json:"tracks_inventory"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Cost            decimal.Decimal `json:"cost"`
	Price           decimal.Decimal `json:"price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	StockQuantity   decimal.Decimal `json:"stock_quantity"`
	MinStock        decimal.Decimal `json:"min_stock"`
	TracksInventory bool            `json:"tracks_inventory"`
}

// ProductFromEntity arma la respuesta a partir de la entidad.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Cost:            p.Cost,
		Price:           p.Price,
		TaxRate:         p.TaxRate,
		StockQuantity:   p.StockQuantity,
		MinStock:        p.MinStock,
		TracksInventory: p.TracksInventory,
	}
}
