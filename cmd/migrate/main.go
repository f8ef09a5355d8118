// migrate aplica o revierte las migraciones SQL embebidas en el binario.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Por defecto ejecuta "up". Lee la conexión de las mismas variables que la API (DATABASE_URL, DB_*).
package main

import (
	"os"

	"github.com/jhoicas/ppic-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ppic-api/pkg/config"
	"github.com/jhoicas/ppic-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Named("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	defer migrator.Close()

	switch cmd {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
		if err == nil {
			log.Info().Msg("última migración revertida")
		}
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = migrator.Version()
		if err == nil {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión de esquema")
		}
	default:
		log.Fatal().Str("comando", cmd).Msg("comando desconocido: use up, down o version")
	}
	if err != nil {
		log.Error().Err(err).Str("comando", cmd).Msg("migración fallida")
		_ = migrator.Close()
		os.Exit(1)
	}
}
