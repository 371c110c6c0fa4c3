package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ofiz_payments_created_total",
		Help: "Checkout preferences registered.",
	})

	EscrowReleased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ofiz_escrow_released_total",
		Help: "Escrow releases completed.",
	})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ofiz_gateway_webhook_events_total",
		Help: "Gateway webhook notifications by reported status.",
	}, []string{"status"})

	SubscriptionCharges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ofiz_subscription_charges_total",
		Help: "Subscription card charges by result status.",
	}, []string{"status"})
)

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
