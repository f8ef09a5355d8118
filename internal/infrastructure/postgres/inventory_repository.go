package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryRepo)(nil)

// InventoryRepo kardex de inventario sobre inventory_transactions (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// OnHandQuantity entradas menos salidas más ajustes con signo. Sin movimientos devuelve cero.
func (r *InventoryRepo) OnHandQuantity(ctx context.Context, itemType entity.ItemType, itemID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE transaction_type
			WHEN 'Receipt' THEN quantity
			WHEN 'Issue' THEN -quantity
			WHEN 'Adjustment' THEN quantity
			ELSE 0 END), 0)
		FROM inventory_transactions
		WHERE item_type = $1 AND item_id = $2`
	var onHand decimal.Decimal
	if err := r.q.QueryRow(ctx, query, string(itemType), itemID).Scan(&onHand); err != nil {
		return decimal.Zero, fmt.Errorf("on hand %s %s: %w", itemType, itemID, err)
	}
	return onHand, nil
}

// LockItem toma un advisory lock de transacción sobre el ítem. Solo tiene efecto dentro de una tx.
func (r *InventoryRepo) LockItem(ctx context.Context, itemType entity.ItemType, itemID string) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, string(itemType)+":"+itemID)
	if err != nil {
		return fmt.Errorf("lock item: %w", err)
	}
	return nil
}

// Create persiste una transacción de inventario.
func (r *InventoryRepo) Create(ctx context.Context, tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = tx.CreatedAt
	}
	query := `
		INSERT INTO inventory_transactions (id, item_id, item_type, transaction_type, quantity, unit_cost,
			reference_id, reference_type, notes, transaction_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	var unitCost decimal.NullDecimal
	if tx.UnitCost != nil {
		unitCost = decimal.NewNullDecimal(*tx.UnitCost)
	}
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.ItemID, string(tx.ItemType), tx.TransactionType, tx.Quantity, unitCost,
		nullString(tx.ReferenceID), nullString(tx.ReferenceType), nullString(tx.Notes),
		tx.TransactionDate, tx.CreatedAt, nullString(tx.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// ListByItem kardex de un ítem, del más reciente al más antiguo.
func (r *InventoryRepo) ListByItem(ctx context.Context, itemType entity.ItemType, itemID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, item_id, item_type, transaction_type, quantity, unit_cost,
		       COALESCE(reference_id, ''), COALESCE(reference_type, ''), COALESCE(notes, ''),
		       transaction_date, created_at, COALESCE(created_by, '')
		FROM inventory_transactions
		WHERE item_type = $1 AND item_id = $2
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, string(itemType), itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryTransaction
	for rows.Next() {
		var (
			t        entity.InventoryTransaction
			itemTyp  string
			unitCost decimal.NullDecimal
		)
		if err := rows.Scan(&t.ID, &t.ItemID, &itemTyp, &t.TransactionType, &t.Quantity, &unitCost,
			&t.ReferenceID, &t.ReferenceType, &t.Notes, &t.TransactionDate, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.ItemType = entity.ItemType(itemTyp)
		if unitCost.Valid {
			t.UnitCost = &unitCost.Decimal
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
