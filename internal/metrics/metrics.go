// Package metrics provides Prometheus instrumentation for the storefront:
// cart mutation throughput, storage failures, the current cart size and
// simulated auth events.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CartMutationsTotal counts store mutations, labeled by op:
	// "add", "remove", "update", "clear".
	CartMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Total number of cart mutations",
	}, []string{"op"})

	// StorageErrorsTotal counts failed writes to the session key-value store.
	StorageErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_storage_errors_total",
		Help: "Total number of failed session storage writes",
	}, []string{"op"})

	// CartItems tracks the item count (sum of quantities) after the last mutation.
	CartItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_items",
		Help: "Current number of items in the cart",
	})

	// AuthEventsTotal counts simulated auth events: "login", "signup", "logout".
	AuthEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_auth_events_total",
		Help: "Total number of simulated authentication events",
	}, []string{"event"})
)

func init() {
	prometheus.MustRegister(
		CartMutationsTotal,
		StorageErrorsTotal,
		CartItems,
		AuthEventsTotal,
	)
}

// Handler returns the HTTP handler that serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
