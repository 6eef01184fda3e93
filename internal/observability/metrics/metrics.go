package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics exposes counters/histograms for the conversation engine.
type EngineMetrics struct {
	turnsTotal     *prometheus.CounterVec
	bookingsTotal  prometheus.Counter
	slotRacesLost  prometheus.Counter
	extractLatency prometheus.Histogram
	sessionResets  prometheus.Counter
	storeFailures  *prometheus.CounterVec
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "turns_total",
			Help:      "Total conversation turns processed",
		}, []string{"state", "outcome"}),
		bookingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "bookings_confirmed_total",
			Help:      "Total appointments confirmed",
		}),
		slotRacesLost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "slot_races_lost_total",
			Help:      "Slot selections lost to a concurrent session",
		}),
		extractLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "extraction_latency_seconds",
			Help:      "Latency of entity extraction per turn",
			Buckets:   prometheus.DefBuckets,
		}),
		sessionResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "session_resets_total",
			Help:      "Total explicit session resets",
		}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "store_failures_total",
			Help:      "Backing store failures surfaced to the conversation",
		}, []string{"store"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.bookingsTotal, m.slotRacesLost,
		m.extractLatency, m.sessionResets, m.storeFailures)
	return m
}

func (m *EngineMetrics) ObserveTurn(state, outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(state, outcome).Inc()
}

func (m *EngineMetrics) ObserveBooking() {
	if m == nil {
		return
	}
	m.bookingsTotal.Inc()
}

func (m *EngineMetrics) ObserveSlotRaceLost() {
	if m == nil {
		return
	}
	m.slotRacesLost.Inc()
}

func (m *EngineMetrics) ObserveExtractionLatency(seconds float64) {
	if m == nil {
		return
	}
	m.extractLatency.Observe(seconds)
}

func (m *EngineMetrics) ObserveReset() {
	if m == nil {
		return
	}
	m.sessionResets.Inc()
}

func (m *EngineMetrics) ObserveStoreFailure(store string) {
	if m == nil {
		return
	}
	m.storeFailures.WithLabelValues(store).Inc()
}
