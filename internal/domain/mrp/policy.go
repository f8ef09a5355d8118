// Package mrp contiene las cuatro etapas del cálculo MRP como funciones puras:
// agregación de demanda, neteo contra inventario, explosión de BOM de un nivel y
// planeación de compras. No hace I/O; el caso de uso de aplicación le entrega los datos.
package mrp

import (
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Policy parámetros de compra inyectados desde configuración.
// Los valores por material del maestro tienen prioridad sobre estos.
type Policy struct {
	SafetyStockFraction  decimal.Decimal // 0.20 = 20 % sobre el faltante
	DefaultLeadTimeDays  int
	FallbackUnitPrice    decimal.Decimal
	OrderDateFromRunDate bool // fecha de pedido = hoy − lead time (comportamiento heredado)
}

// DefaultPolicy 20 % de stock de seguridad y 7 días de lead time.
func DefaultPolicy() Policy {
	return Policy{
		SafetyStockFraction: decimal.NewFromFloat(0.2),
		DefaultLeadTimeDays: 7,
		FallbackUnitPrice:   decimal.Zero,
	}
}

func (p Policy) leadTime(line entity.BOMLine) int {
	if line.LeadTimeDays != nil && *line.LeadTimeDays >= 0 {
		return *line.LeadTimeDays
	}
	return p.DefaultLeadTimeDays
}

func (p Policy) safetyFraction(line entity.BOMLine) decimal.Decimal {
	if line.SafetyStockPct != nil && !line.SafetyStockPct.IsNegative() {
		return *line.SafetyStockPct
	}
	return p.SafetyStockFraction
}

// unitPrice precio de compra > costo promedio > precio de respaldo.
func (p Policy) unitPrice(line entity.BOMLine) decimal.Decimal {
	if line.UnitPrice != nil && line.UnitPrice.IsPositive() {
		return *line.UnitPrice
	}
	if line.AverageCost.IsPositive() {
		return line.AverageCost
	}
	return p.FallbackUnitPrice
}
