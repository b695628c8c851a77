package otel

import (
	"context"
	"encoding/json"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"skillswap/backend/internal/events"
)

// NewEventEmitter returns an events.Emitter that forwards lifecycle events as
// OTel log records via the given LoggerProvider. A nil provider yields a
// no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) events.Emitter {
	if provider == nil {
		return noopEmitter{}
	}
	return &otelEmitter{logger: provider.Logger("skillswap.events")}
}

// NewEventEmitterWithLogger wires an explicit record sink; used by tests.
func NewEventEmitterWithLogger(logger recordLogger) events.Emitter {
	return &otelEmitter{logger: logger}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *events.Event) error { return nil }
func (noopEmitter) Close() error                              { return nil }

// recordLogger is the slice of otellog.Logger the emitter needs.
type recordLogger interface {
	Emit(ctx context.Context, rec otellog.Record)
}

type otelEmitter struct {
	logger recordLogger
}

// Emit converts the event to an OTel log record and emits it.
func (e *otelEmitter) Emit(ctx context.Context, event *events.Event) error {
	if event == nil {
		return nil
	}
	rec := otellog.Record{}
	rec.SetTimestamp(event.CreatedAt)
	if len(event.Data) > 0 {
		if raw, err := json.Marshal(event.Data); err == nil {
			rec.SetBody(otellog.BytesValue(raw))
		}
	}
	rec.AddAttributes(
		otellog.String("event_id", event.ID),
		otellog.String("event_type", event.Type),
		otellog.String("source", event.Source),
	)
	e.logger.Emit(ctx, rec)
	return nil
}

// Close is a no-op; the LoggerProvider owns exporter shutdown.
func (e *otelEmitter) Close() error { return nil }
