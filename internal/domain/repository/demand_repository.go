package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
)

// DemandRepository puerto de lectura de la demanda independiente (órdenes de venta y pronósticos).
// Los rangos de fecha son inclusivos en ambos extremos y se comparan como fechas calendario.
type DemandRepository interface {
	ListOpenSalesOrderLines(ctx context.Context, from, to time.Time, statuses []string) ([]entity.SalesOrderDemand, error)
	ListForecasts(ctx context.Context, from, to time.Time) ([]entity.Forecast, error)
}
