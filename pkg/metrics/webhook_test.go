package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWebhookMetricsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWebhookMetrics(reg)

	m.IncProcessed("payment_intent.succeeded")
	m.IncProcessed("payment_intent.succeeded")
	m.IncRejected("signature")
	m.IncDuplicate("")
	m.IncFailed("charge.failed")

	if got := testutil.ToFloat64(m.processed.WithLabelValues("payment_intent.succeeded")); got != 2 {
		t.Fatalf("expected 2 processed, got %v", got)
	}
	if got := testutil.ToFloat64(m.rejected.WithLabelValues("signature")); got != 1 {
		t.Fatalf("expected 1 rejected, got %v", got)
	}
	if got := testutil.ToFloat64(m.duplicate.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty type to normalize to unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.failed.WithLabelValues("charge.failed")); got != 1 {
		t.Fatalf("expected 1 failed, got %v", got)
	}
}

func TestWebhookMetricsNilSafe(t *testing.T) {
	var m *WebhookMetrics
	m.IncProcessed("x")
	m.IncRejected("x")
	m.IncDuplicate("x")
	m.IncFailed("x")

	empty := NewWebhookMetrics(nil)
	empty.IncProcessed("x")
}
