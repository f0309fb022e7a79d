package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cada regla de negocio tiene su propio centinela: los handlers los mapean a
// códigos HTTP distintos y nunca se colapsan en un error genérico.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrCustomerNotFound      = errors.New("cliente no encontrado")
	ErrSaleNotFound          = errors.New("venta no encontrada")
	ErrInvoiceNotFound       = errors.New("factura no encontrada")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidAmount         = errors.New("monto inválido")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrCreditLimitExceeded   = errors.New("límite de crédito excedido")
	ErrPaymentExceedsBalance = errors.New("el pago excede el saldo adeudado")
	ErrCustomerRequired      = errors.New("la venta no tiene cliente asociado")
	ErrDuplicateInvoice      = errors.New("la venta ya tiene una factura emitida")
)
