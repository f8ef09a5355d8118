package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLevel existencia de un ítem en un instante (foto tomada al inicio de una corrida).
type InventoryLevel struct {
	ItemID   string
	ItemType ItemType
	OnHand   decimal.Decimal
	AsOf     time.Time
}
