// Package mrp orquesta una corrida MRP: lee demanda, existencias y BOM de los
// repositorios, ejecuta las etapas puras de internal/domain/mrp y registra el
// resultado (historial, caché y evento).
package mrp

import (
	"context"
	"time"

	"github.com/jhoicas/ppic-api/internal/application/dto"
	"github.com/jhoicas/ppic-api/internal/domain/entity"
)

// Clock fuente de la fecha actual; inyectable en pruebas.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj del sistema.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ResultStore guarda el último resultado por horizonte. Latest retorna domain.ErrNotFound si no hay.
type ResultStore interface {
	Save(ctx context.Context, result *dto.MRPResultResponse) error
	Latest(ctx context.Context, horizon int) (*dto.MRPResultResponse, error)
}

// EventPublisher publica eventos de integración.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// ReportGenerator genera el PDF de sugerencias de compra.
type ReportGenerator interface {
	GenerateMRPReport(result *entity.MRPResult, runCode string) ([]byte, error)
}

// EventRunCompleted routing key del evento de corrida terminada.
const EventRunCompleted = "mrp.run.completed"

// RunCompletedEvent payload del evento mrp.run.completed.
type RunCompletedEvent struct {
	RunID           string            `json:"run_id"`
	RunCode         string            `json:"run_code"`
	PlanningHorizon int               `json:"planning_horizon"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Summary         dto.MRPSummaryDTO `json:"summary"`
}
