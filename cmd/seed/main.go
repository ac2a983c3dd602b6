// Command seed restablece una sesión (o el espacio sin prefijo) al catálogo inicial.
//
//	go run ./cmd/seed -session <id>
//	go run ./cmd/seed            # claves e2_products / e2_cart sin prefijo
package main

import (
	"context"
	"flag"
	"time"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/shop"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/persistence"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/storage"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/config"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/logger"
)

func main() {
	sessionID := flag.String("session", "", "id de sesión a restablecer (vacío = sin prefijo)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.Storage.Driver == config.DriverMemory {
		log.Fatal().Msg("STORAGE_DRIVER=memory no persiste entre procesos; usar file, redis o postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	if err := backend.State.Reset(ctx, *sessionID); err != nil {
		log.Fatal().Err(err).Msg("borrar registros")
	}
	products := persistence.SeedCatalog()
	if err := backend.State.Save(ctx, *sessionID, shop.Snapshot{Products: products}); err != nil {
		log.Fatal().Err(err).Msg("guardar catálogo inicial")
	}
	for _, p := range products {
		log.Info().Str("id", p.ID).Str("name", p.Name).Int("stock", p.Stock).Msg("producto")
	}
	log.Info().Str("driver", backend.Driver).Str("session", *sessionID).Msg("catálogo inicial restablecido")
}
