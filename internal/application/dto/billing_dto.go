package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// IssueInvoiceRequest body para POST /api/invoices.
// PointOfSale es opcional: si va vacío se usa la serie configurada de la terminal.
type IssueInvoiceRequest struct {
	SaleID      string `json:"sale_id" validate:"required"`
	PointOfSale string `json:"point_of_sale,omitempty"`
}

// InvoiceResponse factura emitida.
type InvoiceResponse struct {
	ID                   string          `json:"id"`
	SaleID               string          `json:"sale_id"`
	Type                 string          `json:"type"`
	Number               string          `json:"number"` // formato legal PPPP-NNNNNNNN
	Date                 time.Time       `json:"date"`
	CustomerName         string          `json:"customer_name"`
	CustomerTaxID        string          `json:"customer_tax_id"`
	CustomerTaxCondition string          `json:"customer_tax_condition"`
	NetTotal             decimal.Decimal `json:"net_total"`
	TaxTotal             decimal.Decimal `json:"tax_total"`
	GrandTotal           decimal.Decimal `json:"grand_total"`
	CreatedBy            string          `json:"created_by"`
}

// InvoiceFromEntity arma la respuesta a partir de la entidad.
func InvoiceFromEntity(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                   inv.ID,
		SaleID:               inv.SaleID,
		Type:                 inv.Type,
		Number:               fmt.Sprintf("%s-%08d", inv.PointOfSale, inv.Number),
		Date:                 inv.Date,
		CustomerName:         inv.CustomerName,
		CustomerTaxID:        inv.CustomerTaxID,
		CustomerTaxCondition: inv.CustomerTaxCondition,
		NetTotal:             inv.NetTotal,
		TaxTotal:             inv.TaxTotal,
		GrandTotal:           inv.GrandTotal,
		CreatedBy:            inv.CreatedBy,
	}
}

// InvoiceDetailResponse factura junto con la venta que la respalda.
type InvoiceDetailResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Sale    *SaleResponse   `json:"sale,omitempty"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name         string          `json:"name" validate:"required"`
	TaxID        string          `json:"tax_id" validate:"required"`
	TaxCondition string          `json:"tax_condition" validate:"required"`
	Email        string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string          `json:"phone,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TaxID         string          `json:"tax_id"`
	TaxCondition  string          `json:"tax_condition"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
}

// CustomerFromEntity arma la respuesta a partir de la entidad.
func CustomerFromEntity(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		TaxID:         c.TaxID,
		TaxCondition:  c.TaxCondition,
		Email:         c.Email,
		Phone:         c.Phone,
		CreditLimit:   c.CreditLimit,
		CreditBalance: c.CreditBalance,
	}
}
