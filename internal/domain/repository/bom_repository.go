package repository

import (
	"context"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
)

// BOMRepository puerto de lectura de listas de materiales de un nivel (solo hijos tipo Material).
type BOMRepository interface {
	ListMaterialLines(ctx context.Context, parentIDs []string) ([]entity.BOMLine, error)
}
