package telegram

import (
	"strings"
	"time"

	coreconfig "github.com/paulwanjiku-hub/Kiambu-house-hunter/core/config"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// DefaultMiddlewares builds the shared middleware chain for the bot.
// The user gate sits innermost so throttling and receipt logging are
// never delayed by another update from the same user.
func DefaultMiddlewares(cfg *coreconfig.Config, gate *middleware.UserGate, onLimited tele.HandlerFunc) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}

	if cfg != nil {
		interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
		if interval > 0 {
			ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
			for _, t := range cfg.RateLimit.ExcludeUpdates {
				ex[strings.ToLower(t)] = struct{}{}
			}
			mws = append(mws, Middleware{
				Name: "rate_limit",
				Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
					Interval:  interval,
					Burst:     cfg.RateLimit.Burst,
					Exclude:   ex,
					OnLimited: onLimited,
				}),
			})
		}
	}

	mws = append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)

	if gate != nil {
		mws = append(mws, Middleware{Name: "user_gate", Use: gate.Middleware})
	}

	return mws
}
