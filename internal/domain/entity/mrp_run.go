package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una corrida MRP registrada.
const (
	MRPRunStatusCompleted = "COMPLETED"
	MRPRunStatusFailed    = "FAILED"
)

// MRPRun historial de una corrida. Result guarda el JSON de la respuesta tal como se entregó.
type MRPRun struct {
	ID                    string
	RunCode               string
	PlanningHorizon       int
	Status                string
	TotalParts            int
	TotalMaterials        int
	MaterialsWithShortage int
	TotalPOValue          decimal.Decimal
	Result                json.RawMessage
	ErrorMessage          string
	StartedAt             time.Time
	FinishedAt            time.Time
	CreatedBy             string
}
