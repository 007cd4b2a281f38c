package health

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the bot's service counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	updates         *prometheus.CounterVec
	favoritesSaved  prometheus.Counter
	favoritesGone   prometheus.Counter
	catalogListings prometheus.Gauge
}

// NewMetrics builds the registry with runtime collectors and bot counters.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_updates_handled_total",
			Help: "Handled Telegram updates by handler and status.",
		}, []string{"handler", "status"}),
		favoritesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_favorites_saved_total",
			Help: "Listings saved to favorites.",
		}),
		favoritesGone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_favorites_removed_total",
			Help: "Listings removed from favorites.",
		}),
		catalogListings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bot_catalog_listings",
			Help: "Listings currently loaded from the catalog file.",
		}),
	}
	reg.MustRegister(m.updates, m.favoritesSaved, m.favoritesGone, m.catalogListings)
	return m
}

// ObserveUpdate counts one handled update.
func (m *Metrics) ObserveUpdate(handler, status string) {
	m.updates.WithLabelValues(handler, status).Inc()
}

// FavoriteSaved counts one saved favorite.
func (m *Metrics) FavoriteSaved() { m.favoritesSaved.Inc() }

// FavoriteRemoved counts one removed favorite.
func (m *Metrics) FavoriteRemoved() { m.favoritesGone.Inc() }

// SetCatalogSize records the loaded listing count.
func (m *Metrics) SetCatalogSize(n int) { m.catalogListings.Set(float64(n)) }

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
