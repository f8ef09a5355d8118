package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandSource origen de una línea de demanda independiente.
type DemandSource string

const (
	DemandSourceSalesOrder DemandSource = "Sales Order"
	DemandSourceForecast   DemandSource = "Forecast"
)

// DemandLine una unidad de demanda independiente leída al inicio de la corrida.
type DemandLine struct {
	ItemID      string
	PartNumber  string
	PartName    string
	DueDate     time.Time
	Quantity    decimal.Decimal
	Source      DemandSource
	ReferenceID string
}

// RequirementKey clave (ítem, fecha de entrega) de un requerimiento bruto.
type RequirementKey struct {
	ItemID  string
	DueDate string // YYYY-MM-DD
}

// GrossRequirement demanda bruta de un ítem para una fecha, ya neteada contra inventario.
type GrossRequirement struct {
	PartID            string
	PartNumber        string
	PartName          string
	RequiredQuantity  decimal.Decimal
	AvailableQuantity decimal.Decimal
	ShortageQuantity  decimal.Decimal
	DueDate           time.Time
	Source            DemandSource
	ReferenceID       string
}

// Key devuelve la clave de agrupación del requerimiento.
func (g *GrossRequirement) Key() RequirementKey {
	return RequirementKey{ItemID: g.PartID, DueDate: g.DueDate.Format(DateLayout)}
}

// MaterialRequirement demanda dependiente acumulada de un material y su sugerencia de compra.
type MaterialRequirement struct {
	MaterialID          string
	MaterialCode        string
	Description         string
	TotalRequired       decimal.Decimal
	AvailableStock      decimal.Decimal
	PlannedOrders       decimal.Decimal
	Shortage            decimal.Decimal
	SuggestedPOQuantity decimal.Decimal
	SupplierLeadTime    int
	OrderDate           *time.Time // nil cuando no hay faltante

	// Datos de planeación que no forman parte del contrato JSON del resultado.
	UnitPrice       decimal.Decimal
	SafetyStockPct  decimal.Decimal
	EarliestDueDate time.Time
}

// POValue valor estimado de la orden de compra sugerida.
func (m *MaterialRequirement) POValue() decimal.Decimal {
	return m.SuggestedPOQuantity.Mul(m.UnitPrice)
}

// MRPSummary totales de la corrida.
type MRPSummary struct {
	TotalParts            int
	TotalMaterials        int
	MaterialsWithShortage int
	TotalPOValue          decimal.Decimal
}

// MRPResult salida completa de una corrida MRP.
type MRPResult struct {
	GrossRequirements    []GrossRequirement
	MaterialRequirements []MaterialRequirement
	PlanningHorizon      int
	GeneratedAt          time.Time
	Summary              MRPSummary
}

// DateLayout formato de fecha calendario usado en claves y respuestas.
const DateLayout = "2006-01-02"
