package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"gatewayd/internal/lora"
)

func TestEventLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "debug", "json")
	m, err := lora.New(nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	m.SetEventPublisher(NewEventLogger(l))
	_ = m.Activate("lora-3")
	_ = m.Activate("missing")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("json: %v", err)
	}
	if first["message"] != lora.EventActivated || first["adapter"] != "lora-3" || first["level"] != "info" {
		t.Fatalf("unexpected first line: %v", first)
	}
	if !strings.Contains(lines[1], `"level":"warn"`) {
		t.Fatalf("refusal should log at warn: %s", lines[1])
	}
}

func TestNewLoggerLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "nonsense", "json")
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestAdapterMetricsFollowEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	am := NewAdapterMetrics(reg)
	m, err := lora.New(nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	snap := m.Snapshot()
	am.Observe(snap.LoadedCount, 1, snap.ExclusiveMode)
	if got := testutil.ToFloat64(am.loaded); got != 5 {
		t.Fatalf("loaded gauge=%v", got)
	}
	m.SetEventPublisher(am)
	_ = m.ToggleLoad("lora-1")
	if got := testutil.ToFloat64(am.loaded); got != 4 {
		t.Fatalf("loaded gauge after unload=%v", got)
	}
	if got := testutil.ToFloat64(am.active); got != 0 {
		t.Fatalf("active gauge after unload=%v", got)
	}
	m.SetMode(false)
	if got := testutil.ToFloat64(am.exclusive); got != 0 {
		t.Fatalf("exclusive gauge=%v", got)
	}
	if got := testutil.ToFloat64(am.ops.WithLabelValues(lora.EventUnloaded)); got != 1 {
		t.Fatalf("unload counter=%v", got)
	}
}
