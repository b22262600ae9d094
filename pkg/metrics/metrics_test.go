package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveAvailability(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "test")

	m.ObserveAvailability("open", 12)
	m.ObserveAvailability("open", 3)
	m.ObserveAvailability("day_off", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AvailabilityComputations.WithLabelValues("open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AvailabilityComputations.WithLabelValues("day_off")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAvailability("open", 1)
		m.ObserveBookingCreated("confirmed")
		m.ObserveBookingConflict("slot_taken")
		m.ObserveCache("hit")
	})
}
