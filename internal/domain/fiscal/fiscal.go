// Package fiscal contiene la lógica fiscal pura del comprobante: derivación
// del tipo de factura según la condición de IVA del cliente y el recálculo de
// netos, impuestos y totales a partir de las líneas congeladas de la venta.
// Sin dependencias de persistencia: todo es determinista y testeable aislado.
package fiscal

import (
	"github.com/shopspring/decimal"
)

// Condiciones frente al IVA reconocidas (espejo de entity para no depender de él).
const (
	conditionResponsableInscripto = "RESPONSABLE_INSCRIPTO"

	invoiceTypeA = "A"
	invoiceTypeB = "B"
)

// InvoiceTypeFor deriva el tipo de comprobante desde la condición de IVA.
// Responsable inscripto recibe factura A (IVA discriminado por línea); toda
// otra condición recibe factura B (total final, sin discriminar).
func InvoiceTypeFor(taxCondition string) string {
	if taxCondition == conditionResponsableInscripto {
		return invoiceTypeA
	}
	return invoiceTypeB
}

// Line es una línea congelada de la venta: cantidad, precio unitario neto y
// alícuota tal como quedaron registrados al confirmar la venta.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // fracción (0.21, no 21)
}

// LineAmounts es el resultado fiscal de una línea.
type LineAmounts struct {
	Subtotal decimal.Decimal // cantidad × precio, redondeado
	Tax      decimal.Decimal // subtotal × alícuota, redondeado
}

// Totals agrupa los montos del comprobante.
type Totals struct {
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Gross decimal.Decimal
}

// RoundMoney redondea a 2 decimales, mitad hacia arriba (precisión de moneda).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeLine calcula subtotal e impuesto de una línea con redondeo por línea.
func ComputeLine(l Line) LineAmounts {
	subtotal := RoundMoney(l.Quantity.Mul(l.UnitPrice))
	tax := RoundMoney(subtotal.Mul(l.TaxRate))
	return LineAmounts{Subtotal: subtotal, Tax: tax}
}

// ComputeTotals recalcula neto, IVA y total desde las líneas congeladas.
// El comprobante refleja los precios efectivamente cobrados: nunca se toma un
// total cacheado ni precios vivos del catálogo.
func ComputeTotals(lines []Line) Totals {
	var net, tax decimal.Decimal
	for _, l := range lines {
		amounts := ComputeLine(l)
		net = net.Add(amounts.Subtotal)
		tax = tax.Add(amounts.Tax)
	}
	return Totals{Net: net, Tax: tax, Gross: net.Add(tax)}
}
