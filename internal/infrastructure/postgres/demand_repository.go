package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

var _ repository.DemandRepository = (*DemandRepo)(nil)

// DemandRepo lee órdenes de venta y pronósticos.
type DemandRepo struct {
	q Querier
}

// NewDemandRepository construye el adaptador. Acepta pool o tx (Querier).
func NewDemandRepository(q Querier) *DemandRepo {
	return &DemandRepo{q: q}
}

// ListOpenSalesOrderLines líneas de órdenes con entrega en [from, to] y estado en statuses.
func (r *DemandRepo) ListOpenSalesOrderLines(ctx context.Context, from, to time.Time, statuses []string) ([]entity.SalesOrderDemand, error) {
	query := `
		SELECT sol.id, so.so_number, COALESCE(c.name, ''), so.status, so.delivery_date,
		       p.id, p.part_number, p.part_name, sol.quantity
		FROM sales_order_lines sol
		JOIN sales_orders so ON so.id = sol.sales_order_id
		JOIN parts p ON p.id = sol.part_id
		LEFT JOIN customers c ON c.id = so.customer_id
		WHERE so.delivery_date BETWEEN $1 AND $2
		  AND so.status = ANY($3)
		ORDER BY so.delivery_date, so.so_number, sol.id`
	rows, err := r.q.Query(ctx, query, from, to, statuses)
	if err != nil {
		return nil, fmt.Errorf("list sales order lines: %w", err)
	}
	defer rows.Close()

	var list []entity.SalesOrderDemand
	for rows.Next() {
		var d entity.SalesOrderDemand
		if err := rows.Scan(&d.LineID, &d.SONumber, &d.CustomerName, &d.Status, &d.DeliveryDate,
			&d.PartID, &d.PartNumber, &d.PartName, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan sales order line: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListForecasts pronósticos con periodo en [from, to].
func (r *DemandRepo) ListForecasts(ctx context.Context, from, to time.Time) ([]entity.Forecast, error) {
	query := `
		SELECT f.id, p.id, p.part_number, p.part_name, f.period, f.quantity
		FROM forecasts f
		JOIN parts p ON p.id = f.part_id
		WHERE f.period BETWEEN $1 AND $2
		ORDER BY f.period, p.part_number`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()

	var list []entity.Forecast
	for rows.Next() {
		var f entity.Forecast
		if err := rows.Scan(&f.ID, &f.PartID, &f.PartNumber, &f.PartName, &f.Period, &f.Quantity); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
