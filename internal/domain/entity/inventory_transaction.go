package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TransactionTypeReceipt    = "Receipt"    // entrada
	TransactionTypeIssue      = "Issue"      // salida
	TransactionTypeAdjustment = "Adjustment" // ajuste con signo
)

// InventoryTransaction registro del kardex. La existencia de un ítem es la suma de su kardex.
type InventoryTransaction struct {
	ID              string
	ItemID          string
	ItemType        ItemType
	TransactionType string
	Quantity        decimal.Decimal // Receipt/Issue positivos; Adjustment con signo
	UnitCost        *decimal.Decimal
	ReferenceID     string
	ReferenceType   string
	Notes           string
	TransactionDate time.Time
	CreatedAt       time.Time
	CreatedBy       string
}
