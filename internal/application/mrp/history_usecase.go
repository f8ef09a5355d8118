package mrp

import (
	"context"

	"github.com/jhoicas/ppic-api/internal/application/dto"
	"github.com/jhoicas/ppic-api/internal/domain"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

// HistoryUseCase consulta el historial de corridas.
type HistoryUseCase struct {
	runRepo repository.MRPRunRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(runRepo repository.MRPRunRepository) *HistoryUseCase {
	return &HistoryUseCase{runRepo: runRepo}
}

// List corridas más recientes primero, sin el resultado completo.
func (uc *HistoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.MRPRunListResponse, error) {
	page.DefaultPage()
	runs, total, err := uc.runRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.DataAccess("historial MRP", err)
	}
	items := make([]dto.MRPRunDTO, 0, len(runs))
	for _, r := range runs {
		d := dto.NewMRPRunDTO(r)
		d.Result = nil
		items = append(items, d)
	}
	return &dto.MRPRunListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Get una corrida con su resultado.
func (uc *HistoryUseCase) Get(ctx context.Context, id string) (*dto.MRPRunDTO, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	run, err := uc.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	d := dto.NewMRPRunDTO(run)
	return &d, nil
}
