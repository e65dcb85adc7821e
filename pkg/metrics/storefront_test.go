package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStorefrontMetrics(reg)

	metrics.IncCartOp("add")
	metrics.IncCartOp("add")
	metrics.IncCheckoutOutcome("success")
	metrics.IncDeliveryLookup("zone_a")
	metrics.IncDeliveryLookup("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_operations_total", "op", "add"); err != nil {
		t.Fatalf("fetch cart ops: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "checkout_outcomes_total", "outcome", "success"); err != nil {
		t.Fatalf("fetch checkout outcomes: %v", err)
	} else if got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "delivery_zone_lookups_total", "zone", "unknown"); err != nil {
		t.Fatalf("fetch delivery lookups: %v", err)
	} else if got != 1 {
		t.Fatalf("expected empty zone to normalize to unknown=1, got %f", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var metrics *StorefrontMetrics
	metrics.IncCartOp("add")
	metrics.IncCheckoutOutcome("success")
	metrics.IncDeliveryLookup("zone_a")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
