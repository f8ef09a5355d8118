package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
)

var _ repository.MRPRunRepository = (*MRPRunRepo)(nil)

// MRPRunRepo historial de corridas en mrp_runs.
type MRPRunRepo struct {
	q Querier
}

// NewMRPRunRepository construye el adaptador.
func NewMRPRunRepository(q Querier) *MRPRunRepo {
	return &MRPRunRepo{q: q}
}

const mrpRunColumns = `id, run_code, planning_horizon, status, total_parts, total_materials,
	materials_with_shortage, total_po_value, result, COALESCE(error_message, ''),
	started_at, finished_at, COALESCE(created_by, '')`

// Create inserta la corrida; run_code es único.
func (r *MRPRunRepo) Create(ctx context.Context, run *entity.MRPRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	query := `
		INSERT INTO mrp_runs (id, run_code, planning_horizon, status, total_parts, total_materials,
			materials_with_shortage, total_po_value, result, error_message, started_at, finished_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	var result []byte
	if len(run.Result) > 0 {
		result = run.Result
	}
	_, err := r.q.Exec(ctx, query,
		run.ID, run.RunCode, run.PlanningHorizon, run.Status, run.TotalParts, run.TotalMaterials,
		run.MaterialsWithShortage, run.TotalPOValue, result, nullString(run.ErrorMessage),
		run.StartedAt, run.FinishedAt, nullString(run.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create mrp run %s: código duplicado: %w", run.RunCode, err)
		}
		return fmt.Errorf("create mrp run: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *MRPRunRepo) GetByID(ctx context.Context, id string) (*entity.MRPRun, error) {
	query := `SELECT ` + mrpRunColumns + ` FROM mrp_runs WHERE id = $1`
	run, err := scanMRPRun(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mrp run: %w", err)
	}
	return run, nil
}

// List corridas de la más reciente a la más antigua, sin el JSON del resultado, más el total.
func (r *MRPRunRepo) List(ctx context.Context, limit, offset int) ([]*entity.MRPRun, int, error) {
	query := `
		SELECT id, run_code, planning_horizon, status, total_parts, total_materials,
		       materials_with_shortage, total_po_value, COALESCE(error_message, ''),
		       started_at, finished_at, COALESCE(created_by, ''), COUNT(*) OVER()
		FROM mrp_runs
		ORDER BY started_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list mrp runs: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.MRPRun
		total int
	)
	for rows.Next() {
		var run entity.MRPRun
		if err := rows.Scan(&run.ID, &run.RunCode, &run.PlanningHorizon, &run.Status, &run.TotalParts,
			&run.TotalMaterials, &run.MaterialsWithShortage, &run.TotalPOValue, &run.ErrorMessage,
			&run.StartedAt, &run.FinishedAt, &run.CreatedBy, &total); err != nil {
			return nil, 0, fmt.Errorf("scan mrp run: %w", err)
		}
		list = append(list, &run)
	}
	return list, total, rows.Err()
}

func scanMRPRun(row pgx.Row) (*entity.MRPRun, error) {
	var (
		run    entity.MRPRun
		result []byte
	)
	if err := row.Scan(&run.ID, &run.RunCode, &run.PlanningHorizon, &run.Status, &run.TotalParts,
		&run.TotalMaterials, &run.MaterialsWithShortage, &run.TotalPOValue, &result, &run.ErrorMessage,
		&run.StartedAt, &run.FinishedAt, &run.CreatedBy); err != nil {
		return nil, err
	}
	run.Result = result
	return &run, nil
}
