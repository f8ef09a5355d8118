package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Forecast pronóstico de demanda de una parte para un periodo (fecha).
type Forecast struct {
	ID         string
	PartID     string
	PartNumber string
	PartName   string
	Period     time.Time
	Quantity   decimal.Decimal
}
