package mrp

import (
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ShortageParents ítems con faltante > 0; solo ellos necesitan su BOM.
func ShortageParents(reqs []*entity.GrossRequirement) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range reqs {
		if !r.ShortageQuantity.IsPositive() {
			continue
		}
		if _, ok := seen[r.PartID]; ok {
			continue
		}
		seen[r.PartID] = struct{}{}
		ids = append(ids, r.PartID)
	}
	return ids
}

// DemandedMaterials materiales que la explosión va a crear, para consultar su existencia antes.
func DemandedMaterials(reqs []*entity.GrossRequirement, lines []entity.BOMLine) []string {
	parents := make(map[string]struct{})
	for _, id := range ShortageParents(reqs) {
		parents[id] = struct{}{}
	}
	seen := make(map[string]struct{})
	var ids []string
	for _, l := range lines {
		if _, ok := parents[l.ParentItemID]; !ok {
			continue
		}
		if _, ok := seen[l.ChildMaterialID]; ok {
			continue
		}
		seen[l.ChildMaterialID] = struct{}{}
		ids = append(ids, l.ChildMaterialID)
	}
	return ids
}

// Explode deriva la demanda dependiente de materiales: faltante × cantidad por padre,
// acumulada por material. Un MaterialRequirement se crea la primera vez que un faltante lo
// referencia; su existencia sale de materialStock y el lead time del maestro o de la política.
func Explode(
	reqs []*entity.GrossRequirement,
	lines []entity.BOMLine,
	materialStock map[string]decimal.Decimal,
	policy Policy,
) []*entity.MaterialRequirement {
	byParent := make(map[string][]entity.BOMLine)
	for _, l := range lines {
		byParent[l.ParentItemID] = append(byParent[l.ParentItemID], l)
	}

	index := make(map[string]*entity.MaterialRequirement)
	var out []*entity.MaterialRequirement
	for _, r := range reqs {
		if !r.ShortageQuantity.IsPositive() {
			continue
		}
		for _, l := range byParent[r.PartID] {
			dependent := r.ShortageQuantity.Mul(l.QuantityPerParent)
			m, ok := index[l.ChildMaterialID]
			if !ok {
				m = &entity.MaterialRequirement{
					MaterialID:       l.ChildMaterialID,
					MaterialCode:     l.MaterialCode,
					Description:      l.Description,
					AvailableStock:   materialStock[l.ChildMaterialID],
					PlannedOrders:    decimal.Zero,
					Shortage:         decimal.Zero,
					SupplierLeadTime: policy.leadTime(l),
					UnitPrice:        policy.unitPrice(l),
					SafetyStockPct:   policy.safetyFraction(l),
					EarliestDueDate:  r.DueDate,
				}
				index[l.ChildMaterialID] = m
				out = append(out, m)
			}
			m.TotalRequired = m.TotalRequired.Add(dependent)
			if r.DueDate.Before(m.EarliestDueDate) {
				m.EarliestDueDate = r.DueDate
			}
		}
	}
	return out
}
