package mrp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ppic-api/internal/application/dto"
	"github.com/jhoicas/ppic-api/internal/domain"
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	domainmrp "github.com/jhoicas/ppic-api/internal/domain/mrp"
	"github.com/jhoicas/ppic-api/internal/domain/repository"
	"github.com/jhoicas/ppic-api/pkg/logger"
)

const sideEffectTimeout = 5 * time.Second

// Config parámetros de la corrida.
type Config struct {
	Policy            domainmrp.Policy
	DefaultHorizon    int
	MaxHorizon        int
	Timeout           time.Duration
	LookupConcurrency int
	Location          *time.Location // zona para "hoy"; nil = UTC
}

// DefaultConfig 90 días de horizonte, máximo 730, 30 s de timeout y 8 consultas concurrentes.
func DefaultConfig() Config {
	return Config{
		Policy:            domainmrp.DefaultPolicy(),
		DefaultHorizon:    90,
		MaxHorizon:        730,
		Timeout:           30 * time.Second,
		LookupConcurrency: 8,
		Location:          time.UTC,
	}
}

// RunUseCase ejecuta corridas MRP. Historial, caché, evento y reporte son opcionales.
type RunUseCase struct {
	demandRepo repository.DemandRepository
	bomRepo    repository.BOMRepository
	invRepo    repository.InventoryRepository
	runRepo    repository.MRPRunRepository
	store      ResultStore
	publisher  EventPublisher
	reports    ReportGenerator
	clock      Clock
	cfg        Config
	log        *logger.Logger
}

// NewRunUseCase construye el caso de uso.
func NewRunUseCase(
	demandRepo repository.DemandRepository,
	bomRepo repository.BOMRepository,
	invRepo repository.InventoryRepository,
	clock Clock,
	cfg Config,
	log *logger.Logger,
) *RunUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LookupConcurrency <= 0 {
		cfg.LookupConcurrency = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RunUseCase{
		demandRepo: demandRepo,
		bomRepo:    bomRepo,
		invRepo:    invRepo,
		clock:      clock,
		cfg:        cfg,
		log:        log.Named("mrp"),
	}
}

// WithHistory registra cada corrida en mrp_runs.
func (uc *RunUseCase) WithHistory(runRepo repository.MRPRunRepository) *RunUseCase {
	uc.runRepo = runRepo
	return uc
}

// WithResultStore cachea el último resultado por horizonte.
func (uc *RunUseCase) WithResultStore(store ResultStore) *RunUseCase {
	uc.store = store
	return uc
}

// WithPublisher publica mrp.run.completed al terminar.
func (uc *RunUseCase) WithPublisher(p EventPublisher) *RunUseCase {
	uc.publisher = p
	return uc
}

// WithReportGenerator habilita el reporte PDF.
func (uc *RunUseCase) WithReportGenerator(g ReportGenerator) *RunUseCase {
	uc.reports = g
	return uc
}

// ResolveHorizon aplica el valor por defecto y valida 1..MaxHorizon.
func (uc *RunUseCase) ResolveHorizon(days *int) (int, error) {
	if days == nil {
		return uc.cfg.DefaultHorizon, nil
	}
	if *days < 1 {
		return 0, domain.ErrInvalidHorizon
	}
	if uc.cfg.MaxHorizon > 0 && *days > uc.cfg.MaxHorizon {
		return 0, fmt.Errorf("%w (máximo %d)", domain.ErrInvalidHorizon, uc.cfg.MaxHorizon)
	}
	return *days, nil
}

// Run ejecuta la corrida y retorna el resultado en el contrato JSON.
func (uc *RunUseCase) Run(ctx context.Context, horizonDays *int, userID string) (*dto.MRPResultResponse, error) {
	_, resp, err := uc.execute(ctx, horizonDays, userID)
	return resp, err
}

// Report ejecuta la corrida y genera el PDF de sugerencias de compra.
func (uc *RunUseCase) Report(ctx context.Context, horizonDays *int, userID string) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("reporte MRP: generador no configurado")
	}
	run, resp, err := uc.execute(ctx, horizonDays, userID)
	if err != nil {
		return nil, err
	}
	result := run.result
	pdf, err := uc.reports.GenerateMRPReport(result, run.code)
	if err != nil {
		return nil, fmt.Errorf("reporte MRP %s: %w", resp.RunID, err)
	}
	return pdf, nil
}

// Latest último resultado cacheado para el horizonte.
func (uc *RunUseCase) Latest(ctx context.Context, horizonDays *int) (*dto.MRPResultResponse, error) {
	horizon, err := uc.ResolveHorizon(horizonDays)
	if err != nil {
		return nil, err
	}
	if uc.store == nil {
		return nil, domain.ErrNotFound
	}
	return uc.store.Latest(ctx, horizon)
}

type runInfo struct {
	id     string
	code   string
	result *entity.MRPResult
}

func (uc *RunUseCase) execute(ctx context.Context, horizonDays *int, userID string) (*runInfo, *dto.MRPResultResponse, error) {
	horizon, err := uc.ResolveHorizon(horizonDays)
	if err != nil {
		return nil, nil, err
	}

	started := uc.clock.Now()
	run := &runInfo{id: uuid.New().String(), code: newRunCode(started)}
	log := uc.log.With().Str("run_code", run.code).Int("horizon", horizon).Logger()
	log.Info().Msg("corrida MRP iniciada")

	runCtx := ctx
	if uc.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, uc.cfg.Timeout)
		defer cancel()
	}

	result, err := uc.compute(runCtx, horizon, started)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(started)).Msg("corrida MRP fallida")
		uc.recordFailure(ctx, run, horizon, started, userID, err)
		return nil, nil, err
	}
	run.result = result

	resp := dto.NewMRPResultResponse(result)
	resp.RunID = run.id

	log.Info().
		Int("parts", result.Summary.TotalParts).
		Int("materials", result.Summary.TotalMaterials).
		Int("with_shortage", result.Summary.MaterialsWithShortage).
		Str("po_value", result.Summary.TotalPOValue.String()).
		Dur("duration", time.Since(started)).
		Msg("corrida MRP terminada")

	uc.afterRun(ctx, run, &resp, started, userID)
	return run, &resp, nil
}

// compute ejecuta agregación, neteo, explosión y planeación. Cualquier error de lectura aborta.
func (uc *RunUseCase) compute(ctx context.Context, horizon int, now time.Time) (*entity.MRPResult, error) {
	local := now.In(uc.cfg.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, horizon)

	// ── Demanda: órdenes de venta y pronósticos en paralelo ──────────────────
	type ordersResult struct {
		lines []entity.SalesOrderDemand
		err   error
	}
	type forecastsResult struct {
		forecasts []entity.Forecast
		err       error
	}
	ordersCh := make(chan ordersResult, 1)
	forecastsCh := make(chan forecastsResult, 1)

	go func() {
		lines, err := uc.demandRepo.ListOpenSalesOrderLines(ctx, today, until, entity.OpenSalesOrderStatuses)
		ordersCh <- ordersResult{lines, err}
	}()
	go func() {
		forecasts, err := uc.demandRepo.ListForecasts(ctx, today, until)
		forecastsCh <- forecastsResult{forecasts, err}
	}()

	orders := <-ordersCh
	forecasts := <-forecastsCh
	if orders.err != nil {
		return nil, domain.DataAccess("órdenes de venta", orders.err)
	}
	if forecasts.err != nil {
		return nil, domain.DataAccess("pronósticos", forecasts.err)
	}

	demand := domainmrp.DemandFromSalesOrders(orders.lines)
	demand = append(demand, domainmrp.DemandFromForecasts(forecasts.forecasts)...)
	reqs := domainmrp.Aggregate(demand)

	// ── Neteo contra existencias de partes ───────────────────────────────────
	partStock, err := uc.onHand(ctx, entity.ItemTypePart, domainmrp.ItemIDs(reqs))
	if err != nil {
		return nil, err
	}
	domainmrp.Net(reqs, partStock)

	// ── Explosión de BOM para los padres con faltante ────────────────────────
	var lines []entity.BOMLine
	if parents := domainmrp.ShortageParents(reqs); len(parents) > 0 {
		lines, err = uc.bomRepo.ListMaterialLines(ctx, parents)
		if err != nil {
			return nil, domain.DataAccess("lista de materiales", err)
		}
	}
	materialStock, err := uc.onHand(ctx, entity.ItemTypeMaterial, domainmrp.DemandedMaterials(reqs, lines))
	if err != nil {
		return nil, err
	}
	mats := domainmrp.Explode(reqs, lines, materialStock, uc.cfg.Policy)

	// ── Planeación de compras ────────────────────────────────────────────────
	domainmrp.Plan(mats, uc.cfg.Policy, today)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domainmrp.Assemble(horizon, now.UTC(), reqs, mats), nil
}

// onHand una consulta por ítem, acotada por LookupConcurrency.
func (uc *RunUseCase) onHand(ctx context.Context, itemType entity.ItemType, ids []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	qty := make([]decimal.Decimal, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.LookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			q, err := uc.invRepo.OnHandQuantity(gctx, itemType, id)
			if err != nil {
				return domain.DataAccess(fmt.Sprintf("existencia %s %s", itemType, id), err)
			}
			qty[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, id := range ids {
		out[id] = qty[i]
	}
	return out, nil
}

// afterRun historial, caché y evento. Sus fallas solo se registran en el log.
func (uc *RunUseCase) afterRun(ctx context.Context, run *runInfo, resp *dto.MRPResultResponse, started time.Time, userID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if uc.runRepo != nil {
		payload, err := json.Marshal(resp)
		if err != nil {
			uc.log.Warn().Err(err).Str("run_code", run.code).Msg("no se pudo serializar el resultado")
		}
		s := run.result.Summary
		rec := &entity.MRPRun{
			ID:                    run.id,
			RunCode:               run.code,
			PlanningHorizon:       resp.PlanningHorizon,
			Status:                entity.MRPRunStatusCompleted,
			TotalParts:            s.TotalParts,
			TotalMaterials:        s.TotalMaterials,
			MaterialsWithShortage: s.MaterialsWithShortage,
			TotalPOValue:          s.TotalPOValue,
			Result:                payload,
			StartedAt:             started.UTC(),
			FinishedAt:            uc.clock.Now().UTC(),
			CreatedBy:             userID,
		}
		if err := uc.runRepo.Create(ctx, rec); err != nil {
			uc.log.Warn().Err(err).Str("run_code", run.code).Msg("no se pudo registrar la corrida")
		}
	}

	if uc.store != nil {
		if err := uc.store.Save(ctx, resp); err != nil {
			uc.log.Warn().Err(err).Str("run_code", run.code).Msg("no se pudo cachear el resultado")
		}
	}

	if uc.publisher != nil {
		evt := RunCompletedEvent{
			RunID:           run.id,
			RunCode:         run.code,
			PlanningHorizon: resp.PlanningHorizon,
			GeneratedAt:     resp.GeneratedAt,
			Summary:         resp.Summary,
		}
		if err := uc.publisher.Publish(ctx, EventRunCompleted, evt); err != nil {
			uc.log.Warn().Err(err).Str("run_code", run.code).Msg("no se pudo publicar el evento")
		}
	}
}

func (uc *RunUseCase) recordFailure(ctx context.Context, run *runInfo, horizon int, started time.Time, userID string, runErr error) {
	if uc.runRepo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	rec := &entity.MRPRun{
		ID:              run.id,
		RunCode:         run.code,
		PlanningHorizon: horizon,
		Status:          entity.MRPRunStatusFailed,
		TotalPOValue:    decimal.Zero,
		ErrorMessage:    runErr.Error(),
		StartedAt:       started.UTC(),
		FinishedAt:      uc.clock.Now().UTC(),
		CreatedBy:       userID,
	}
	if errors.Is(runErr, context.DeadlineExceeded) {
		rec.ErrorMessage = "timeout: " + runErr.Error()
	}
	if err := uc.runRepo.Create(ctx, rec); err != nil {
		uc.log.Warn().Err(err).Str("run_code", run.code).Msg("no se pudo registrar la corrida fallida")
	}
}

// newRunCode MRP-YYYYMMDD-XXXXXX con sufijo aleatorio.
func newRunCode(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("MRP-%s-%s", t.UTC().Format("20060102"), suffix)
}
