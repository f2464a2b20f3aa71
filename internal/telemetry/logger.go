// Package telemetry turns adapter lifecycle events into log lines and
// Prometheus metrics, and builds the process logger.
package telemetry

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gatewayd/internal/lora"
)

// NewLogger builds the process logger. format is "console" or "json".
func NewLogger(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "gatewayd").Logger()
}

// EventLogger logs adapter events. Refusals log at warn, the rest at info.
type EventLogger struct {
	log zerolog.Logger
}

func NewEventLogger(l zerolog.Logger) *EventLogger {
	return &EventLogger{log: l.With().Str("component", "lora").Logger()}
}

func (p *EventLogger) Publish(e lora.Event) {
	ev := p.log.Info()
	if e.Name == lora.EventOperationRefused {
		ev = p.log.Warn()
	}
	if e.AdapterID != "" {
		ev = ev.Str("adapter", e.AdapterID)
	}
	ev.Fields(e.Fields).Msg(e.Name)
}
