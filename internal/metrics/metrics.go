package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	availabilityQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbermall",
			Name:      "availability_queries_total",
			Help:      "Availability queries by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	availabilityDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "barbermall",
			Name:      "availability_query_duration_seconds",
			Help:      "Time spent computing availability.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	slotsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbermall",
			Name:      "slots_generated_total",
			Help:      "Slots produced by availability queries.",
		},
		[]string{"endpoint"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbermall",
			Name:      "availability_cache_total",
			Help:      "Availability cache lookups by result.",
		},
		[]string{"result"},
	)

	appointmentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barbermall",
			Name:      "appointments_created_total",
			Help:      "Appointments booked.",
		},
	)

	appointmentsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbermall",
			Name:      "appointments_rejected_total",
			Help:      "Booking attempts rejected by reason.",
		},
		[]string{"reason"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			availabilityQueries,
			availabilityDuration,
			slotsGenerated,
			cacheLookups,
			appointmentsCreated,
			appointmentsRejected,
		)
	})
}

func ObserveQuery(endpoint, outcome string, started time.Time, slots int) {
	availabilityQueries.WithLabelValues(endpoint, outcome).Inc()
	availabilityDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
	slotsGenerated.WithLabelValues(endpoint).Add(float64(slots))
}

func IncCache(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

func IncAppointmentCreated() {
	appointmentsCreated.Inc()
}

func IncAppointmentRejected(reason string) {
	appointmentsRejected.WithLabelValues(reason).Inc()
}
