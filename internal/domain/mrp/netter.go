package mrp

import (
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemIDs ítems distintos referenciados por los requerimientos, en orden de aparición.
func ItemIDs(reqs []*entity.GrossRequirement) []string {
	seen := make(map[string]struct{}, len(reqs))
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if _, ok := seen[r.PartID]; ok {
			continue
		}
		seen[r.PartID] = struct{}{}
		ids = append(ids, r.PartID)
	}
	return ids
}

// Net aplica la existencia de cada ítem a todos sus requerimientos.
// La existencia no se descuenta entre fechas: cada bucket se compara contra la misma foto.
// Un ítem ausente en onHand se considera con existencia cero.
func Net(reqs []*entity.GrossRequirement, onHand map[string]decimal.Decimal) {
	for _, r := range reqs {
		r.AvailableQuantity = onHand[r.PartID]
		r.ShortageQuantity = floorZero(r.RequiredQuantity.Sub(r.AvailableQuantity))
	}
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
