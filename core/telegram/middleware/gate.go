package middleware

import (
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"
)

// UserGate serializes update handling per user: two updates from the same
// user run one after the other, while different users proceed in parallel.
// Favorites writes and browse flows therefore never interleave for a user
// even when Telegram delivers a burst of taps.
type UserGate struct {
	mu      sync.Mutex
	entries map[int64]*gateEntry
	idleTTL time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

type gateEntry struct {
	mu   sync.Mutex
	refs int
	idle time.Time
}

// NewUserGate creates a gate whose per-user locks are evicted after
// sitting unused for idleTTL.
func NewUserGate(idleTTL time.Duration) *UserGate {
	if idleTTL <= 0 {
		idleTTL = 5 * time.Minute
	}
	g := &UserGate{
		entries: make(map[int64]*gateEntry),
		idleTTL: idleTTL,
		stop:    make(chan struct{}),
	}
	go g.janitor()
	return g
}

// Do runs fn while holding the lock for userID.
func (g *UserGate) Do(userID int64, fn func() error) error {
	g.mu.Lock()
	e, ok := g.entries[userID]
	if !ok {
		e = &gateEntry{}
		g.entries[userID] = e
	}
	e.refs++
	g.mu.Unlock()

	e.mu.Lock()
	err := fn()
	e.mu.Unlock()

	g.mu.Lock()
	e.refs--
	if e.refs == 0 {
		e.idle = time.Now()
	}
	g.mu.Unlock()

	return err
}

// Len reports the number of tracked users. Used by tests.
func (g *UserGate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

// Close stops the eviction loop.
func (g *UserGate) Close() {
	g.stopOnce.Do(func() { close(g.stop) })
}

func (g *UserGate) janitor() {
	ticker := time.NewTicker(g.idleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-g.stop:
			return
		case <-ticker.C:
			g.evict(time.Now())
		}
	}
}

func (g *UserGate) evict(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, e := range g.entries {
		if e.refs == 0 && now.Sub(e.idle) > g.idleTTL {
			delete(g.entries, id)
		}
	}
}

// Middleware wraps handlers so each user's updates run serially.
func (g *UserGate) Middleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		user := c.Sender()
		if user == nil {
			return next(c)
		}
		return g.Do(user.ID, func() error { return next(c) })
	}
}
