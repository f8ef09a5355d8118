package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/ppic-api/docs"
	"github.com/jhoicas/ppic-api/internal/application/inventory"
	appmrp "github.com/jhoicas/ppic-api/internal/application/mrp"
	domainmrp "github.com/jhoicas/ppic-api/internal/domain/mrp"
	"github.com/jhoicas/ppic-api/internal/infrastructure/cache"
	"github.com/jhoicas/ppic-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/ppic-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ppic-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ppic-api/internal/interfaces/http"
	"github.com/jhoicas/ppic-api/pkg/config"
	"github.com/jhoicas/ppic-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

var errRabbitDown = errors.New("conexión RabbitMQ cerrada")

// @title                       PPIC API
// @version                     1.0
// @description                 Planeación de requerimientos de materiales (MRP) e inventario.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Named("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migraciones")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = migrator.Close()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	demandRepo := postgres.NewDemandRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	runRepo := postgres.NewMRPRunRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := inventory.NewUseCase(txRunner, inventoryRepo, itemRepo)

	runUC := appmrp.NewRunUseCase(demandRepo, bomRepo, inventoryRepo, appmrp.SystemClock{}, appmrp.Config{
		Policy: domainmrp.Policy{
			SafetyStockFraction:  cfg.MRP.SafetyStockFraction,
			DefaultLeadTimeDays:  cfg.MRP.DefaultLeadTimeDays,
			FallbackUnitPrice:    cfg.MRP.FallbackUnitPrice,
			OrderDateFromRunDate: cfg.MRP.OrderDateFromRunDate,
		},
		DefaultHorizon:    cfg.MRP.DefaultHorizonDays,
		MaxHorizon:        cfg.MRP.MaxHorizonDays,
		Timeout:           cfg.MRP.RunTimeout,
		LookupConcurrency: cfg.MRP.LookupConcurrency,
		Location:          loc,
	}, log).
		WithHistory(runRepo).
		WithReportGenerator(infrapdf.NewMRPReportGenerator(cfg.App.Name))
	historyUC := appmrp.NewHistoryUseCase(runRepo)

	checks := map[string]httpRouter.Pinger{"postgres": pool}

	// Caché del último resultado (opcional)
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		store := cache.NewRedisResultStore(client, cfg.Redis.KeyPrefix, cfg.Redis.ResultTTL)
		runUC.WithResultStore(store)
		checks["redis"] = store
	}

	// Eventos de integración (opcional)
	if cfg.RabbitMQ.Enabled() {
		rmq, err := messaging.Dial(cfg.RabbitMQ, log.Named("rabbitmq"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer rmq.Close()
		publisher, err := messaging.NewPublisher(rmq, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Source, log.Named("events"))
		if err != nil {
			log.Fatal().Err(err).Msg("publisher de eventos")
		}
		runUC.WithPublisher(publisher)
		checks["rabbitmq"] = httpRouter.PingFunc(func(context.Context) error {
			if !rmq.Healthy() {
				return errRabbitDown
			}
			return nil
		})
	}

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: la API queda sin autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.MRP.RunTimeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "PPIC API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory: inventoryUC,
		MRP:       runUC,
		History:   historyUC,
		Health:    httpRouter.NewHealthHandler(cfg.App.Name, checks),
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
