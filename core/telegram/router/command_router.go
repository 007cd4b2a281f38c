package router

import (
	"time"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
	tg "github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes prepares command handlers with per-handler summary logging.
// Recovery, rate limiting and the user gate come from the global chain.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := "command." + normalizeHandlerName(cmd)
		handler := def.Handler
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler: func(c tele.Context) error {
				return handleWithSummary(c, name, time.Now(), "", "", func() error {
					return handler(c)
				})
			},
		})
	}

	logger.Info(logger.Background(), "tg.wire", "complete",
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
