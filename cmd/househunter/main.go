package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/bot"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/bootstrap"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/cmd"
	coreconfig "github.com/paulwanjiku-hub/Kiambu-house-hunter/core/config"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/favorites"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/health"
)

func main() {
	// Local development reads BOT_TOKEN and friends from .env.
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		Bootstrap:         buildApp,
	})
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func buildApp(cfg *coreconfig.Config) (cmd.TelegramApp, cmd.ShutdownFunc, error) {
	res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, nil, err
	}

	metrics := health.NewMetrics()
	metrics.SetCatalogSize(res.Catalog.Snapshot().Len())

	srv := health.NewServer(cfg.Health.Listen, cfg.Health.Port, metrics)
	srv.Start()

	app := bot.New(cfg, res.Catalog, favorites.NewStore(res.DB), metrics)

	shutdown := func(ctx context.Context) error {
		err := srv.Shutdown(ctx)
		if cerr := res.DB.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return app, shutdown, nil
}
