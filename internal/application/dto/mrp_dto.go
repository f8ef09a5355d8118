package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ppic-api/internal/domain/entity"
)

// RunMRPRequest body de POST /api/mrp/run. Sin horizonte se usa el valor por defecto (90).
type RunMRPRequest struct {
	PlanningHorizonDays *int `json:"planningHorizonDays" validate:"omitempty,min=1"`
}

// GrossRequirementDTO requerimiento bruto neteado.
type GrossRequirementDTO struct {
	PartID            string          `json:"part_id"`
	PartNumber        string          `json:"part_number"`
	PartName          string          `json:"part_name"`
	RequiredQuantity  decimal.Decimal `json:"required_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	ShortageQuantity  decimal.Decimal `json:"shortage_quantity"`
	DueDate           string          `json:"due_date"`
	Source            string          `json:"source"`
	ReferenceID       string          `json:"reference_id"`
}

// MaterialRequirementDTO requerimiento de material con su sugerencia de compra.
type MaterialRequirementDTO struct {
	MaterialID          string          `json:"material_id"`
	MaterialCode        string          `json:"material_code"`
	Description         string          `json:"description"`
	TotalRequired       decimal.Decimal `json:"total_required"`
	AvailableStock      decimal.Decimal `json:"available_stock"`
	PlannedOrders       decimal.Decimal `json:"planned_orders"`
	Shortage            decimal.Decimal `json:"shortage"`
	SuggestedPOQuantity decimal.Decimal `json:"suggested_po_quantity"`
	SupplierLeadTime    int             `json:"supplier_lead_time"`
	OrderDate           string          `json:"order_date"`
}

// MRPSummaryDTO totales de la corrida.
type MRPSummaryDTO struct {
	TotalParts            int             `json:"totalParts"`
	TotalMaterials        int             `json:"totalMaterials"`
	MaterialsWithShortage int             `json:"materialsWithShortage"`
	TotalPOValue          decimal.Decimal `json:"totalPOValue"`
}

// MRPResultResponse respuesta de una corrida MRP.
type MRPResultResponse struct {
	RunID                string                   `json:"runId,omitempty"`
	GrossRequirements    []GrossRequirementDTO    `json:"grossRequirements"`
	MaterialRequirements []MaterialRequirementDTO `json:"materialRequirements"`
	PlanningHorizon      int                      `json:"planningHorizon"`
	GeneratedAt          time.Time                `json:"generatedAt"`
	Summary              MRPSummaryDTO            `json:"summary"`
}

// NewMRPResultResponse mapea el resultado de dominio al contrato JSON.
func NewMRPResultResponse(r *entity.MRPResult) MRPResultResponse {
	out := MRPResultResponse{
		GrossRequirements:    make([]GrossRequirementDTO, 0, len(r.GrossRequirements)),
		MaterialRequirements: make([]MaterialRequirementDTO, 0, len(r.MaterialRequirements)),
		PlanningHorizon:      r.PlanningHorizon,
		GeneratedAt:          r.GeneratedAt,
		Summary: MRPSummaryDTO{
			TotalParts:            r.Summary.TotalParts,
			TotalMaterials:        r.Summary.TotalMaterials,
			MaterialsWithShortage: r.Summary.MaterialsWithShortage,
			TotalPOValue:          r.Summary.TotalPOValue,
		},
	}
	for _, g := range r.GrossRequirements {
		out.GrossRequirements = append(out.GrossRequirements, GrossRequirementDTO{
			PartID:            g.PartID,
			PartNumber:        g.PartNumber,
			PartName:          g.PartName,
			RequiredQuantity:  g.RequiredQuantity,
			AvailableQuantity: g.AvailableQuantity,
			ShortageQuantity:  g.ShortageQuantity,
			DueDate:           g.DueDate.Format(entity.DateLayout),
			Source:            string(g.Source),
			ReferenceID:       g.ReferenceID,
		})
	}
	for _, m := range r.MaterialRequirements {
		orderDate := ""
		if m.OrderDate != nil {
			orderDate = m.OrderDate.Format(entity.DateLayout)
		}
		out.MaterialRequirements = append(out.MaterialRequirements, MaterialRequirementDTO{
			MaterialID:          m.MaterialID,
			MaterialCode:        m.MaterialCode,
			Description:         m.Description,
			TotalRequired:       m.TotalRequired,
			AvailableStock:      m.AvailableStock,
			PlannedOrders:       m.PlannedOrders,
			Shortage:            m.Shortage,
			SuggestedPOQuantity: m.SuggestedPOQuantity,
			SupplierLeadTime:    m.SupplierLeadTime,
			OrderDate:           orderDate,
		})
	}
	return out
}

// MRPRunDTO fila del historial de corridas.
type MRPRunDTO struct {
	ID                    string          `json:"id"`
	RunCode               string          `json:"run_code"`
	PlanningHorizon       int             `json:"planning_horizon"`
	Status                string          `json:"status"`
	TotalParts            int             `json:"total_parts"`
	TotalMaterials        int             `json:"total_materials"`
	MaterialsWithShortage int             `json:"materials_with_shortage"`
	TotalPOValue          decimal.Decimal `json:"total_po_value"`
	ErrorMessage          string          `json:"error_message,omitempty"`
	StartedAt             time.Time       `json:"started_at"`
	FinishedAt            time.Time       `json:"finished_at"`
	CreatedBy             string          `json:"created_by,omitempty"`
	Result                json.RawMessage `json:"result,omitempty"`
}

// NewMRPRunDTO mapea una corrida registrada.
func NewMRPRunDTO(r *entity.MRPRun) MRPRunDTO {
	return MRPRunDTO{
		ID:                    r.ID,
		RunCode:               r.RunCode,
		PlanningHorizon:       r.PlanningHorizon,
		Status:                r.Status,
		TotalParts:            r.TotalParts,
		TotalMaterials:        r.TotalMaterials,
		MaterialsWithShortage: r.MaterialsWithShortage,
		TotalPOValue:          r.TotalPOValue,
		ErrorMessage:          r.ErrorMessage,
		StartedAt:             r.StartedAt,
		FinishedAt:            r.FinishedAt,
		CreatedBy:             r.CreatedBy,
		Result:                r.Result,
	}
}

// MRPRunListResponse historial paginado.
type MRPRunListResponse struct {
	Items []MRPRunDTO  `json:"items"`
	Page  PageResponse `json:"page"`
}
