// Package bot wires the house-hunting flows: the location menu, listing
// cards, and durable per-user favorites.
package bot

import (
	"context"
	"time"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/catalog"
	coreconfig "github.com/paulwanjiku-hub/Kiambu-house-hunter/core/config"
	tg "github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/commands"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/middleware"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/router"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/favorites"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/health"
)

// App aggregates the bot's dependencies and builds its run options.
type App struct {
	cfg       *coreconfig.Config
	catalog   *catalog.Catalog
	favorites *favorites.Store
	metrics   *health.Metrics
	gate      *middleware.UserGate
}

// New assembles the application. metrics may be nil in tests.
func New(cfg *coreconfig.Config, cat *catalog.Catalog, store *favorites.Store, metrics *health.Metrics) *App {
	return &App{
		cfg:       cfg,
		catalog:   cat,
		favorites: store,
		metrics:   metrics,
		gate:      middleware.NewUserGate(5 * time.Minute),
	}
}

// Registry returns the command and callback registrations.
func (a *App) Registry() *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Browse listings",
	})
	reg.RegisterCommand("/favorites", commands.Command{
		Handler:     a.handleFavorites,
		Description: "View your saved listings",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "Show this help",
	})

	_ = reg.RegisterCallback(cbLocation, a.handleLocation)
	_ = reg.RegisterCallback(cbSaveFav, a.handleSave)
	_ = reg.RegisterCallback(cbRemoveFav, a.handleRemove)
	_ = reg.RegisterCallback(cbBack, a.handleBack)

	reg.SetTextFallback(a.handleUnknownText)

	return reg
}

// TelegramRunOptions builds the full bot runtime wiring.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := a.Registry()

	routes := router.CommandRoutes(reg)
	routes = append(routes,
		router.CallbackRoute(reg, router.CallbackOptions{}),
		router.TextRoute(reg, router.TextOptions{}),
	)

	if a.metrics != nil {
		router.SetObserver(a.metrics.ObserveUpdate)
	}

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, a.gate, nil),
		Routes:      routes,
		OnStop: func(context.Context, tg.Runtime) error {
			a.gate.Close()
			return nil
		},
	}, nil
}
