package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring service health and performance
var (
	ComplaintsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "complaints_created_total",
			Help: "Total number of complaints created",
		},
	)

	StatusUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "complaint_status_updates_total",
			Help: "Total number of admin status updates",
		},
	)

	GeocodeLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Total number of geocoding lookups by direction",
		},
		[]string{"direction"},
	)

	GeocodeFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_failures_total",
			Help: "Total number of failed geocoding lookups by direction",
		},
		[]string{"direction"},
	)

	AssistantQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_queries_total",
			Help: "Total number of chatbot questions answered",
		},
	)

	ImageVerificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "image_verifications_total",
			Help: "Total number of photo verification requests",
		},
	)

	ImageVerificationFailOpenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "image_verification_fail_open_total",
			Help: "Total number of verifications passed by the fail-open policy after a remote error",
		},
	)

	AssistantRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_request_duration_seconds",
			Help:    "Duration of generation requests to the assistant backend",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(ComplaintsCreatedTotal)
	prometheus.MustRegister(StatusUpdatesTotal)
	prometheus.MustRegister(GeocodeLookupsTotal)
	prometheus.MustRegister(GeocodeFailuresTotal)
	prometheus.MustRegister(AssistantQueriesTotal)
	prometheus.MustRegister(ImageVerificationsTotal)
	prometheus.MustRegister(ImageVerificationFailOpenTotal)
	prometheus.MustRegister(AssistantRequestDuration)
}
