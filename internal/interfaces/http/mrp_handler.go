package http

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ppic-api/internal/application/dto"
	appmrp "github.com/jhoicas/ppic-api/internal/application/mrp"
	"github.com/jhoicas/ppic-api/internal/domain"
	"github.com/jhoicas/ppic-api/pkg/logger"
)

// MRPHandler expone las corridas MRP, su reporte y su historial.
type MRPHandler struct {
	run     *appmrp.RunUseCase
	history *appmrp.HistoryUseCase
	log     *logger.Logger
}

// NewMRPHandler construye el handler. history puede ser nil.
func NewMRPHandler(run *appmrp.RunUseCase, history *appmrp.HistoryUseCase, log *logger.Logger) *MRPHandler {
	return &MRPHandler{run: run, history: history, log: log}
}

// parseRunRequest acepta cuerpo vacío (horizonte por defecto). Valores no enteros son 400.
func parseRunRequest(c *fiber.Ctx) (dto.RunMRPRequest, map[string]string, bool) {
	var in dto.RunMRPRequest
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return in, nil, true
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return in, map[string]string{"planningHorizonDays": "debe ser un entero positivo"}, false
	}
	if details := validateStruct(in); details != nil {
		return in, details, false
	}
	return in, nil, true
}

// Run godoc
// @Summary      Ejecutar MRP
// @Description  Agrega demanda del horizonte, netea contra inventario, explota la BOM y
//
//	sugiere órdenes de compra.
//
// @Tags         mrp
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunMRPRequest  false  "planningHorizonDays (por defecto 90)"
// @Success      200   {object}  dto.MRPResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/mrp/run [post]
func (h *MRPHandler) Run(c *fiber.Ctx) error {
	in, details, ok := parseRunRequest(c)
	if !ok {
		return validationError(c, domain.ErrInvalidHorizon.Error(), details)
	}
	out, err := h.run.Run(c.UserContext(), in.PlanningHorizonDays, GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de sugerencias de compra
// @Tags         mrp
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.RunMRPRequest  false  "planningHorizonDays (por defecto 90)"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/mrp/report [post]
func (h *MRPHandler) Report(c *fiber.Ctx) error {
	in, details, ok := parseRunRequest(c)
	if !ok {
		return validationError(c, domain.ErrInvalidHorizon.Error(), details)
	}
	pdf, err := h.run.Report(c.UserContext(), in.PlanningHorizonDays, GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="mrp-sugerencias.pdf"`)
	return c.Send(pdf)
}

// Latest godoc
// @Summary      Último resultado MRP cacheado
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        planningHorizonDays  query  int  false  "por defecto 90"
// @Success      200  {object}  dto.MRPResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mrp/latest [get]
func (h *MRPHandler) Latest(c *fiber.Ctx) error {
	var horizon *int
	if raw := c.Query("planningHorizonDays"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return validationError(c, domain.ErrInvalidHorizon.Error(), nil)
		}
		horizon = &v
	}
	out, err := h.run.Latest(c.UserContext(), horizon)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListRuns godoc
// @Summary      Historial de corridas MRP
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.MRPRunListResponse
// @Router       /api/mrp/runs [get]
func (h *MRPHandler) ListRuns(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validationError(c, "paginación inválida", nil)
	}
	if details := validateStruct(page); details != nil {
		return validationError(c, "paginación inválida", details)
	}
	out, err := h.history.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetRun godoc
// @Summary      Detalle de una corrida MRP
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la corrida"
// @Success      200  {object}  dto.MRPRunDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mrp/runs/{id} [get]
func (h *MRPHandler) GetRun(c *fiber.Ctx) error {
	out, err := h.history.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
