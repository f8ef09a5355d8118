package repository

import (
	"context"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
)

// MRPRunRepository historial de corridas MRP.
type MRPRunRepository interface {
	Create(ctx context.Context, run *entity.MRPRun) error
	GetByID(ctx context.Context, id string) (*entity.MRPRun, error)
	List(ctx context.Context, limit, offset int) ([]*entity.MRPRun, int, error)
}
