package entity

import "github.com/shopspring/decimal"

// BOMLine una línea de lista de materiales de un solo nivel cuyo hijo es un material.
// Incluye los campos del maestro de materiales que necesita la planeación de compras.
type BOMLine struct {
	ID                string
	ParentItemID      string
	ChildMaterialID   string
	QuantityPerParent decimal.Decimal

	MaterialCode   string
	Description    string
	UnitPrice      *decimal.Decimal
	AverageCost    decimal.Decimal
	LeadTimeDays   *int
	SafetyStockPct *decimal.Decimal
}
