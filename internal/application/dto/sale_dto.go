package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Items              []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerID         string            `json:"customer_id,omitempty"`
	IsCreditSale       bool              `json:"is_credit_sale"`
	PaymentType        string            `json:"payment_type" validate:"required"`
	AllowNegativeStock bool              `json:"allow_negative_stock,omitempty"`
	AllowOverdraft     bool              `json:"allow_overdraft,omitempty"`
}

// SaleItemRequest línea del carrito (producto y cantidad; el precio lo fija el catálogo).
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// SaleResponse venta con sus ítems congelados.
type SaleResponse struct {
	ID           string             `json:"id"`
	Date         time.Time          `json:"date"`
	CustomerID   string             `json:"customer_id,omitempty"`
	IsCreditSale bool               `json:"is_credit_sale"`
	PaymentType  string             `json:"payment_type"`
	Status       string             `json:"status"`
	Total        decimal.Decimal    `json:"total"`
	CreatedBy    string             `json:"created_by"`
	Items        []SaleItemResponse `json:"items"`
}

// SaleItemResponse línea de venta en respuestas (valores congelados).
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleFromEntity arma la respuesta a partir de la entidad.
func SaleFromEntity(s *entity.Sale) SaleResponse {
	out := SaleResponse{
		ID:           s.ID,
		Date:         s.Date,
		CustomerID:   s.CustomerID,
		IsCreditSale: s.IsCreditSale,
		PaymentType:  s.PaymentType,
		Status:       s.Status,
		Total:        s.Total,
		CreatedBy:    s.CreatedBy,
		Items:        make([]SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}
