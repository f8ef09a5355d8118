package mrp

import (
	"sort"
	"time"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Plan calcula faltante, cantidad sugerida de compra y fecha de pedido de cada material.
//
//	faltante  = max(0, requerido − disponible)
//	sugerido  = ceil(faltante × (1 + fracción de seguridad))   solo si faltante > 0
//	pedido    = primera fecha de entrega que lo disparó − lead time
func Plan(mats []*entity.MaterialRequirement, policy Policy, runDate time.Time) {
	one := decimal.NewFromInt(1)
	for _, m := range mats {
		m.Shortage = floorZero(m.TotalRequired.Sub(m.AvailableStock))
		if !m.Shortage.IsPositive() {
			m.SuggestedPOQuantity = decimal.Zero
			m.OrderDate = nil
			continue
		}
		m.SuggestedPOQuantity = m.Shortage.Mul(one.Add(m.SafetyStockPct)).Ceil()

		anchor := m.EarliestDueDate
		if policy.OrderDateFromRunDate {
			anchor = dateOnly(runDate)
		}
		orderDate := anchor.AddDate(0, 0, -m.SupplierLeadTime)
		m.OrderDate = &orderDate
	}
}

// Assemble arma el resultado ordenado con sus totales.
// Requerimientos por fecha y número de parte; materiales por fecha de pedido (sin fecha al final) y código.
func Assemble(
	horizon int,
	generatedAt time.Time,
	reqs []*entity.GrossRequirement,
	mats []*entity.MaterialRequirement,
) *entity.MRPResult {
	gross := make([]entity.GrossRequirement, 0, len(reqs))
	for _, r := range reqs {
		gross = append(gross, *r)
	}
	sort.SliceStable(gross, func(i, j int) bool {
		if !gross[i].DueDate.Equal(gross[j].DueDate) {
			return gross[i].DueDate.Before(gross[j].DueDate)
		}
		return gross[i].PartNumber < gross[j].PartNumber
	})

	materials := make([]entity.MaterialRequirement, 0, len(mats))
	for _, m := range mats {
		materials = append(materials, *m)
	}
	sort.SliceStable(materials, func(i, j int) bool {
		a, b := materials[i].OrderDate, materials[j].OrderDate
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		}
		return materials[i].MaterialCode < materials[j].MaterialCode
	})

	return &entity.MRPResult{
		GrossRequirements:    gross,
		MaterialRequirements: materials,
		PlanningHorizon:      horizon,
		GeneratedAt:          generatedAt,
		Summary:              Summarize(gross, materials),
	}
}

// Summarize totales derivados de las listas de detalle.
func Summarize(gross []entity.GrossRequirement, mats []entity.MaterialRequirement) entity.MRPSummary {
	s := entity.MRPSummary{
		TotalParts:     len(gross),
		TotalMaterials: len(mats),
		TotalPOValue:   decimal.Zero,
	}
	for i := range mats {
		if mats[i].Shortage.IsPositive() {
			s.MaterialsWithShortage++
		}
		s.TotalPOValue = s.TotalPOValue.Add(mats[i].POValue())
	}
	return s
}
