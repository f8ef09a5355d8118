package inventory

import (
	"context"

	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el registro en el kardex.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.InventoryTransactionRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
