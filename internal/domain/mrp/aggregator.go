package mrp

import (
	"time"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
)

// ForecastReference referencia sintética de un pronóstico: "FORECAST-YYYY-MM-DD".
func ForecastReference(period time.Time) string {
	return "FORECAST-" + period.Format(entity.DateLayout)
}

// DemandFromSalesOrders convierte líneas de orden de venta en demanda con fecha = entrega.
func DemandFromSalesOrders(lines []entity.SalesOrderDemand) []entity.DemandLine {
	out := make([]entity.DemandLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.DemandLine{
			ItemID:      l.PartID,
			PartNumber:  l.PartNumber,
			PartName:    l.PartName,
			DueDate:     dateOnly(l.DeliveryDate),
			Quantity:    l.Quantity,
			Source:      entity.DemandSourceSalesOrder,
			ReferenceID: l.SONumber,
		})
	}
	return out
}

// DemandFromForecasts convierte pronósticos en demanda con fecha = periodo.
func DemandFromForecasts(forecasts []entity.Forecast) []entity.DemandLine {
	out := make([]entity.DemandLine, 0, len(forecasts))
	for _, f := range forecasts {
		out = append(out, entity.DemandLine{
			ItemID:      f.PartID,
			PartNumber:  f.PartNumber,
			PartName:    f.PartName,
			DueDate:     dateOnly(f.Period),
			Quantity:    f.Quantity,
			Source:      entity.DemandSourceForecast,
			ReferenceID: ForecastReference(f.Period),
		})
	}
	return out
}

// Aggregate agrupa la demanda por (ítem, fecha) sumando cantidades.
//
// Cuando una orden de venta y un pronóstico caen en la misma clave, la orden de venta
// define los campos descriptivos, el origen y la referencia. Entre líneas del mismo
// origen gana la primera. El orden de salida es el de primera aparición de cada clave.
func Aggregate(lines []entity.DemandLine) []*entity.GrossRequirement {
	index := make(map[entity.RequirementKey]*entity.GrossRequirement, len(lines))
	out := make([]*entity.GrossRequirement, 0, len(lines))
	for _, l := range lines {
		key := entity.RequirementKey{ItemID: l.ItemID, DueDate: l.DueDate.Format(entity.DateLayout)}
		req, ok := index[key]
		if !ok {
			req = &entity.GrossRequirement{PartID: l.ItemID, DueDate: l.DueDate}
			describe(req, l)
			index[key] = req
			out = append(out, req)
		} else if req.Source == entity.DemandSourceForecast && l.Source == entity.DemandSourceSalesOrder {
			describe(req, l)
		}
		req.RequiredQuantity = req.RequiredQuantity.Add(l.Quantity)
	}
	return out
}

func describe(req *entity.GrossRequirement, l entity.DemandLine) {
	req.PartNumber = l.PartNumber
	req.PartName = l.PartName
	req.Source = l.Source
	req.ReferenceID = l.ReferenceID
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
