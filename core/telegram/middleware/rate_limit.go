package middleware

import (
	"sync"
	"time"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
	"log/slog"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	// Interval is the minimum sustained spacing between updates per user.
	Interval time.Duration
	// Burst allows short spikes above the sustained rate.
	Burst int
	// Exclude lists update kinds exempt from limiting ("message", "callback").
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
}

type userLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitMiddleware returns a middleware that throttles per-user update
// bursts using a token bucket. Stale user buckets are evicted lazily.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	var (
		mu       sync.Mutex
		users    = make(map[int64]*userLimiter)
		lastGC   time.Time
		staleTTL = 10 * time.Minute
	)

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}

			upd := c.Update()
			kind := "other"
			switch {
			case upd.Callback != nil:
				kind = "callback"
			case upd.Message != nil:
				kind = "message"
			}
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}

			now := time.Now()

			mu.Lock()
			if now.Sub(lastGC) > staleTTL {
				for id, ul := range users {
					if now.Sub(ul.seen) > staleTTL {
						delete(users, id)
					}
				}
				lastGC = now
			}
			ul, ok := users[user.ID]
			if !ok {
				ul = &userLimiter{lim: rate.NewLimiter(rate.Every(opts.Interval), opts.Burst)}
				users[user.ID] = ul
			}
			ul.seen = now
			allowed := ul.lim.Allow()
			mu.Unlock()

			if !allowed {
				attrs := []slog.Attr{slog.Int64("user_id", user.ID)}
				if chat := c.Chat(); chat != nil {
					attrs = append(attrs, slog.Int64("chat_id", chat.ID))
				}
				logger.Warn(logger.Background(), "tg", "tg.rate_limit", attrs...)
				if opts.OnLimited != nil {
					_ = opts.OnLimited(c)
				}
				return nil
			}

			return next(c)
		}
	}
}
