package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart mutations, checkout outcomes and delivery
// zone lookups.
type StorefrontMetrics struct {
	cartOps          *prometheus.CounterVec
	checkoutOutcomes *prometheus.CounterVec
	deliveryLookups  *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	checkoutOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Terminal checkout outcomes.",
	}, []string{"outcome"})
	deliveryLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_zone_lookups_total",
		Help: "Delivery fee resolutions by zone.",
	}, []string{"zone"})
	reg.MustRegister(cartOps, checkoutOutcomes, deliveryLookups)
	return &StorefrontMetrics{
		cartOps:          cartOps,
		checkoutOutcomes: checkoutOutcomes,
		deliveryLookups:  deliveryLookups,
	}
}

// IncCartOp counts a cart mutation by operation name.
func (s *StorefrontMetrics) IncCartOp(op string) {
	if s == nil || s.cartOps == nil {
		return
	}
	s.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckoutOutcome counts a terminal checkout outcome (success, cancelled).
func (s *StorefrontMetrics) IncCheckoutOutcome(outcome string) {
	if s == nil || s.checkoutOutcomes == nil {
		return
	}
	s.checkoutOutcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncDeliveryLookup counts a delivery fee resolution by zone.
func (s *StorefrontMetrics) IncDeliveryLookup(zone string) {
	if s == nil || s.deliveryLookups == nil {
		return
	}
	s.deliveryLookups.WithLabelValues(normalizeLabel(zone)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
