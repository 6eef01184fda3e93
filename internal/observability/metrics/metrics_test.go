package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestEngineMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)
	m.ObserveTurn("greeting", "advanced")
	m.ObserveBooking()
	m.ObserveSlotRaceLost()
	m.ObserveExtractionLatency(0.05)
	m.ObserveReset()
	m.ObserveStoreFailure("patients")
}

func TestEngineMetricsNilSafe(t *testing.T) {
	var m *EngineMetrics
	m.ObserveTurn("greeting", "advanced")
	m.ObserveBooking()
	m.ObserveSlotRaceLost()
	m.ObserveExtractionLatency(0.1)
	m.ObserveReset()
	m.ObserveStoreFailure("schedule")
}
