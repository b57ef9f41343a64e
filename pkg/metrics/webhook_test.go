package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestWebhookMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewWebhookMetrics(reg)
	eventType := "checkout.session.completed"

	metrics.ObserveDuration(eventType, 120*time.Millisecond)
	metrics.IncProcessed(eventType)
	metrics.IncDuplicate(eventType)
	metrics.IncIgnored(eventType)
	metrics.IncFailure(eventType)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	for _, name := range []string{"webhook_processed", "webhook_duplicate", "webhook_ignored", "webhook_failure"} {
		got, err := fetchCounterValue(mfs, name, "event_type", eventType)
		if err != nil {
			t.Fatalf("fetch %s: %v", name, err)
		}
		if got != 1 {
			t.Fatalf("expected %s=1, got %f", name, got)
		}
	}
}

func TestWebhookMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewWebhookMetrics(nil)
	metrics.IncProcessed("x")
	metrics.ObserveDuration("", time.Second)
	var nilMetrics *WebhookMetrics
	nilMetrics.IncFailure("x")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, labelName, labelValue string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == labelName && label.GetValue() == labelValue {
					return m.GetCounter().GetValue(), nil
				}
			}
		}
	}
	return 0, fmt.Errorf("metric %s{%s=%q} not found", name, labelName, labelValue)
}
