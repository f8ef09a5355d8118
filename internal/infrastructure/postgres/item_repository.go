package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo lectura del maestro de partes y materiales.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetItem devuelve nil, nil si el ítem no existe (o el id no es un UUID).
func (r *ItemRepo) GetItem(ctx context.Context, itemType entity.ItemType, id string) (*entity.ItemRef, error) {
	var query string
	switch itemType {
	case entity.ItemTypePart:
		query = `SELECT id, part_number, part_name FROM parts WHERE id = $1`
	case entity.ItemTypeMaterial:
		query = `SELECT id, material_code, COALESCE(description, '') FROM materials WHERE id = $1`
	default:
		return nil, nil
	}
	ref := entity.ItemRef{Type: itemType}
	err := r.q.QueryRow(ctx, query, id).Scan(&ref.ID, &ref.Code, &ref.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &ref, nil
}

// GetMaterial devuelve nil, nil si el material no existe.
func (r *ItemRepo) GetMaterial(ctx context.Context, id string) (*entity.Material, error) {
	query := `
		SELECT id, material_code, COALESCE(description, ''), COALESCE(spec, ''), uom,
		       unit_price, average_cost, lead_time_days, safety_stock_pct, status, created_at, updated_at
		FROM materials WHERE id = $1`
	var (
		m         entity.Material
		unitPrice decimal.NullDecimal
		safetyPct decimal.NullDecimal
		leadTime  pgtype.Int4
	)
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.MaterialCode, &m.Description, &m.Spec, &m.UOM,
		&unitPrice, &m.AverageCost, &leadTime, &safetyPct, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	if unitPrice.Valid {
		m.UnitPrice = &unitPrice.Decimal
	}
	if safetyPct.Valid {
		m.SafetyStockPct = &safetyPct.Decimal
	}
	if leadTime.Valid {
		days := int(leadTime.Int32)
		m.LeadTimeDays = &days
	}
	return &m, nil
}

// UpdateMaterialAverageCost actualiza el costo promedio ponderado del material.
func (r *ItemRepo) UpdateMaterialAverageCost(ctx context.Context, id string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE materials SET average_cost = $2, updated_at = now() WHERE id = $1`, id, cost)
	if err != nil {
		return fmt.Errorf("update material cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update material cost: material %s no existe", id)
	}
	return nil
}
