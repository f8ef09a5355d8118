package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ppic-api/internal/application/dto"
	"github.com/jhoicas/ppic-api/internal/application/inventory"
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	"github.com/jhoicas/ppic-api/pkg/logger"
)

// InventoryHandler maneja el kardex de partes y materiales.
type InventoryHandler struct {
	uc  *inventory.UseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// RegisterTransaction godoc
// @Summary      Registrar transacción de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransactionRequest  true  "item_id, item_type, transaction_type, quantity, unit_cost (entradas de material)"
// @Success      201   {object}  dto.InventoryTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RegisterTransaction(c *fiber.Ctx) error {
	var in dto.RegisterTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return validationError(c, "cuerpo inválido", nil)
	}
	if details := validateStruct(in); details != nil {
		return validationError(c, "datos inválidos", details)
	}
	out, err := h.uc.RegisterTransaction(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOnHand godoc
// @Summary      Existencia actual de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        itemType  path  string  true  "Part | Material"
// @Param        itemId    path  string  true  "UUID del ítem"
// @Success      200  {object}  dto.OnHandResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/on-hand/{itemType}/{itemId} [get]
func (h *InventoryHandler) GetOnHand(c *fiber.Ctx) error {
	out, err := h.uc.OnHand(c.UserContext(), entity.ItemType(c.Params("itemType")), c.Params("itemId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Kardex de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        itemType  path   string  true   "Part | Material"
// @Param        itemId    path   string  true   "UUID del ítem"
// @Param        limit     query  int     false  "máximo 100"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions/{itemType}/{itemId} [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validationError(c, "paginación inválida", nil)
	}
	if details := validateStruct(page); details != nil {
		return validationError(c, "paginación inválida", details)
	}
	out, err := h.uc.ListTransactions(c.UserContext(), entity.ItemType(c.Params("itemType")), c.Params("itemId"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
