package repository

import (
	"context"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRepository expone la existencia de un ítem derivada del kardex (entradas menos salidas).
// El núcleo MRP solo depende de este puerto; no sabe cómo se lleva el inventario.
type InventoryRepository interface {
	OnHandQuantity(ctx context.Context, itemType entity.ItemType, itemID string) (decimal.Decimal, error)
}

// InventoryTransactionRepository persistencia del kardex.
type InventoryTransactionRepository interface {
	InventoryRepository
	// LockItem serializa escrituras concurrentes sobre el kardex de un ítem (dura hasta el fin de la tx).
	LockItem(ctx context.Context, itemType entity.ItemType, itemID string) error
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	ListByItem(ctx context.Context, itemType entity.ItemType, itemID string, limit, offset int) ([]*entity.InventoryTransaction, error)
}

// ItemRepository lectura del maestro de partes y materiales.
type ItemRepository interface {
	GetItem(ctx context.Context, itemType entity.ItemType, id string) (*entity.ItemRef, error)
	GetMaterial(ctx context.Context, id string) (*entity.Material, error)
	UpdateMaterialAverageCost(ctx context.Context, id string, cost decimal.Decimal) error
}
