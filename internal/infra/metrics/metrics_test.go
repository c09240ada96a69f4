package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRelayCounters(t *testing.T) {
	IncRelayOutcome(" WhatsApp ", "OK")
	IncRelayOutcome("whatsapp", "ok")
	if got := testutil.ToFloat64(relayMessagesTotal.WithLabelValues("whatsapp", "ok")); got != 2 {
		t.Errorf("expected normalised labels to aggregate to 2, got %v", got)
	}

	IncGatewayPush(false)
	if got := testutil.ToFloat64(gatewayPushTotal.WithLabelValues("false")); got != 1 {
		t.Errorf("expected 1 undelivered push, got %v", got)
	}

	ObserveGeneration(120*time.Millisecond, true)
	if n := testutil.CollectAndCount(generationLatencyMs); n != 1 {
		t.Errorf("expected one histogram series, got %d", n)
	}
}

func TestMustRegisterIsIdempotent(t *testing.T) {
	MustRegister()
	MustRegister()
}
