package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppic-api/internal/application/dto"
	"github.com/jhoicas/ppic-api/internal/domain"
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/internal/domain/inventory"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

// UseCase registra y consulta transacciones del kardex de partes y materiales.
// La existencia nunca se guarda: siempre se calcula sumando el kardex.
type UseCase struct {
	txRunner TxRunner
	txRepo   repository.InventoryTransactionRepository
	itemRepo repository.ItemRepository
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	txRepo repository.InventoryTransactionRepository,
	itemRepo repository.ItemRepository,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		txRepo:   txRepo,
		itemRepo: itemRepo,
		now:      time.Now,
	}
}

// RegisterTransaction valida la entrada, bloquea el ítem, verifica existencia para salidas
// y guarda la transacción. Una entrada de material con costo actualiza su costo promedio.
func (uc *UseCase) RegisterTransaction(ctx context.Context, userID string, in dto.RegisterTransactionRequest) (*dto.InventoryTransactionResponse, error) {
	itemType := entity.ItemType(in.ItemType)
	if in.ItemID == "" || !itemType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	switch in.TransactionType {
	case entity.TransactionTypeReceipt, entity.TransactionTypeIssue:
		if !in.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	case entity.TransactionTypeAdjustment:
		if in.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetItem(ctx, itemType, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now().UTC()
	txn := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		ItemID:          in.ItemID,
		ItemType:        itemType,
		TransactionType: in.TransactionType,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		ReferenceID:     in.ReferenceID,
		ReferenceType:   in.ReferenceType,
		Notes:           in.Notes,
		TransactionDate: now,
		CreatedAt:       now,
		CreatedBy:       userID,
	}
	if in.TransactionDate != nil {
		txn.TransactionDate = in.TransactionDate.UTC()
	}

	var onHandAfter decimal.Decimal
	err = uc.txRunner.Run(ctx, func(txRepo repository.InventoryTransactionRepository, itemRepo repository.ItemRepository) error {
		// Serializa transacciones concurrentes del mismo ítem
		if err := txRepo.LockItem(ctx, itemType, in.ItemID); err != nil {
			return err
		}
		onHand, err := txRepo.OnHandQuantity(ctx, itemType, in.ItemID)
		if err != nil {
			return err
		}
		delta := inventory.SignedQuantity(txn.TransactionType, txn.Quantity)
		if delta.IsNegative() && onHand.Add(delta).IsNegative() {
			return domain.ErrInsufficientStock
		}

		if itemType == entity.ItemTypeMaterial && txn.TransactionType == entity.TransactionTypeReceipt && txn.UnitCost != nil {
			mat, err := itemRepo.GetMaterial(ctx, in.ItemID)
			if err != nil {
				return err
			}
			if mat == nil {
				return domain.ErrNotFound
			}
			newCost := inventory.MovingAverageCost(onHand, mat.AverageCost, txn.Quantity, *txn.UnitCost)
			if err := itemRepo.UpdateMaterialAverageCost(ctx, in.ItemID, newCost); err != nil {
				return err
			}
		}

		if err := txRepo.Create(ctx, txn); err != nil {
			return err
		}
		onHandAfter = onHand.Add(delta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toTransactionResponse(txn)
	resp.OnHandAfter = &onHandAfter
	return &resp, nil
}

// OnHand existencia actual de un ítem.
func (uc *UseCase) OnHand(ctx context.Context, itemType entity.ItemType, itemID string) (*dto.OnHandResponse, error) {
	if itemID == "" || !itemType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetItem(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	qty, err := uc.txRepo.OnHandQuantity(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}
	return &dto.OnHandResponse{
		ItemID:   item.ID,
		ItemType: string(item.Type),
		ItemCode: item.Code,
		ItemName: item.Name,
		OnHand:   qty,
		AsOf:     uc.now().UTC(),
	}, nil
}

// ListTransactions kardex de un ítem, más reciente primero.
func (uc *UseCase) ListTransactions(ctx context.Context, itemType entity.ItemType, itemID string, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	if itemID == "" || !itemType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.txRepo.ListByItem(ctx, itemType, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryTransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func toTransactionResponse(t *entity.InventoryTransaction) dto.InventoryTransactionResponse {
	return dto.InventoryTransactionResponse{
		ID:              t.ID,
		ItemID:          t.ItemID,
		ItemType:        string(t.ItemType),
		TransactionType: t.TransactionType,
		Quantity:        t.Quantity,
		UnitCost:        t.UnitCost,
		ReferenceID:     t.ReferenceID,
		ReferenceType:   t.ReferenceType,
		Notes:           t.Notes,
		TransactionDate: t.TransactionDate,
		CreatedBy:       t.CreatedBy,
	}
}
