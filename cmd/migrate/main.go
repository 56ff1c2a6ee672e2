// migrate aplica el esquema del diario de commits (tabla commit_runs) con golang-migrate.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Por defecto ejecuta "up". Lee DATABASE_URL o DB_* igual que la API.
package main

import (
	"fmt"
	"os"

	"github.com/DaTT2001/warehouse-web/internal/infrastructure/postgres"
	"github.com/DaTT2001/warehouse-web/pkg/config"
	"github.com/DaTT2001/warehouse-web/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	if !cfg.DB.Enabled() {
		log.Fatal().Msg("DATABASE_URL o DB_HOST son obligatorios")
	}

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("migrador")
	}
	defer func() { _ = m.Close() }()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("versión %d (dirty=%v)\n", v, dirty)
		}
	default:
		err = fmt.Errorf("comando desconocido %q (usar up|down|version)", cmd)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración fallida")
		os.Exit(1)
	}
}
