package inventory

import (
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovingAverageCost costo promedio ponderado tras una entrada (servicio de dominio).
// NuevoCosto = ((Existencia * CostoActual) + (CantEntrada * CostoEntrada)) / (Existencia + CantEntrada)
func MovingAverageCost(onHand, currentCost, receivedQty, receivedCost decimal.Decimal) decimal.Decimal {
	if onHand.IsNegative() {
		onHand = decimal.Zero
	}
	sum := onHand.Add(receivedQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := onHand.Mul(currentCost).Add(receivedQty.Mul(receivedCost))
	return num.Div(sum).Round(4)
}

// SignedQuantity efecto de una transacción sobre la existencia: entradas suman, salidas restan,
// ajustes conservan su signo.
func SignedQuantity(transactionType string, quantity decimal.Decimal) decimal.Decimal {
	switch transactionType {
	case entity.TransactionTypeReceipt:
		return quantity.Abs()
	case entity.TransactionTypeIssue:
		return quantity.Abs().Neg()
	case entity.TransactionTypeAdjustment:
		return quantity
	}
	return decimal.Zero
}
