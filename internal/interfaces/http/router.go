package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ppic-api/internal/application/inventory"
	appmrp "github.com/jhoicas/ppic-api/internal/application/mrp"
	"github.com/jhoicas/ppic-api/pkg/jwt"
	"github.com/jhoicas/ppic-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory *inventory.UseCase
	MRP       *appmrp.RunUseCase
	History   *appmrp.HistoryUseCase
	Health    *HealthHandler
	JWTSecret string // vacío: rutas sin autenticación (solo desarrollo)
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
	}

	api := app.Group("/api")
	guard := func(roles ...string) []fiber.Handler {
		if deps.JWTSecret == "" {
			return nil
		}
		return []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(roles...)}
	}
	anyRole := []string{jwt.RolePlanner, jwt.RoleWarehouse, jwt.RoleAdmin}
	route := func(handlers []fiber.Handler, h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, handlers...), h)
	}

	// MRP
	if deps.MRP != nil {
		mrpHandler := NewMRPHandler(deps.MRP, deps.History, log.Named("http.mrp"))
		mrp := api.Group("/mrp")
		mrp.Post("/run", route(guard(jwt.RolePlanner, jwt.RoleAdmin), mrpHandler.Run)...)
		mrp.Post("/report", route(guard(jwt.RolePlanner, jwt.RoleAdmin), mrpHandler.Report)...)
		mrp.Get("/latest", route(guard(anyRole...), mrpHandler.Latest)...)
		if deps.History != nil {
			mrp.Get("/runs", route(guard(anyRole...), mrpHandler.ListRuns)...)
			mrp.Get("/runs/:id", route(guard(anyRole...), mrpHandler.GetRun)...)
		}
	}

	// Inventario
	if deps.Inventory != nil {
		invHandler := NewInventoryHandler(deps.Inventory, log.Named("http.inventory"))
		inv := api.Group("/inventory")
		inv.Post("/transactions", route(guard(jwt.RoleWarehouse, jwt.RoleAdmin), invHandler.RegisterTransaction)...)
		inv.Get("/transactions/:itemType/:itemId", route(guard(anyRole...), invHandler.ListTransactions)...)
		inv.Get("/on-hand/:itemType/:itemId", route(guard(anyRole...), invHandler.GetOnHand)...)
	}
}
