package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo lectura de bill_of_materials unida al maestro de materiales.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ListMaterialLines líneas de un nivel con hijo tipo Material para los padres indicados.
func (r *BOMRepo) ListMaterialLines(ctx context.Context, parentIDs []string) ([]entity.BOMLine, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT b.id, b.parent_part_id, m.id, b.quantity_per_parent,
		       m.material_code, COALESCE(m.description, ''), m.unit_price, m.average_cost,
		       m.lead_time_days, m.safety_stock_pct
		FROM bill_of_materials b
		JOIN materials m ON m.id = b.child_item_id
		WHERE b.child_item_type = 'Material'
		  AND b.parent_part_id = ANY($1::uuid[])
		ORDER BY b.parent_part_id, m.material_code`
	rows, err := r.q.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()

	var list []entity.BOMLine
	for rows.Next() {
		var (
			l         entity.BOMLine
			unitPrice decimal.NullDecimal
			safetyPct decimal.NullDecimal
			leadTime  pgtype.Int4
		)
		if err := rows.Scan(&l.ID, &l.ParentItemID, &l.ChildMaterialID, &l.QuantityPerParent,
			&l.MaterialCode, &l.Description, &unitPrice, &l.AverageCost, &leadTime, &safetyPct); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		if unitPrice.Valid {
			l.UnitPrice = &unitPrice.Decimal
		}
		if safetyPct.Valid {
			l.SafetyStockPct = &safetyPct.Decimal
		}
		if leadTime.Valid {
			days := int(leadTime.Int32)
			l.LeadTimeDays = &days
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
