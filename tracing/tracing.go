// Package tracing records effect runs as OpenTelemetry spans.
//
// Every run becomes a "reactive.effect" span. Runs triggered while another
// effect runs are children of its span, so a trace shows the propagation
// tree of a write.
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AnatoleLucet/reactive"
)

const defaultTracerName = "reactive"

type Config struct {
	// TracerName is the name of the tracer (default: "reactive").
	TracerName string

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider

	// Context is the parent of the outermost spans (default: context.Background()).
	Context context.Context
}

type Option func(*Config)

func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// Tracer is a reactive.Observer. Like the runtime it observes, it is not safe
// for concurrent use.
type Tracer struct {
	tracer trace.Tracer
	ctx    context.Context

	// spans of the running effects, innermost last
	spans []trace.Span
	ctxs  []context.Context
}

var _ reactive.Observer = (*Tracer)(nil)

func New(opts ...Option) *Tracer {
	config := Config{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Tracer{
		tracer: tp.Tracer(config.TracerName),
		ctx:    config.Context,
	}
}

func (t *Tracer) current() context.Context {
	if len(t.ctxs) == 0 {
		return t.ctx
	}

	return t.ctxs[len(t.ctxs)-1]
}

func (t *Tracer) SignalCreated(reactive.SignalID) {}

// SignalWritten adds an event to the running effect's span, if any.
func (t *Tracer) SignalWritten(id reactive.SignalID, notified int) {
	if len(t.spans) == 0 {
		return
	}

	t.spans[len(t.spans)-1].AddEvent("signal written", trace.WithAttributes(
		attribute.Int("reactive.signal_id", int(id)),
		attribute.Int("reactive.notified", notified),
	))
}

func (t *Tracer) EffectStarted(id reactive.EffectID, depth int) {
	ctx, span := t.tracer.Start(t.current(), "reactive.effect",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int("reactive.effect_id", int(id)),
			attribute.Int("reactive.depth", depth),
		),
	)

	t.spans = append(t.spans, span)
	t.ctxs = append(t.ctxs, ctx)
}

func (t *Tracer) EffectFinished(_ reactive.EffectID, elapsed time.Duration, err error) {
	if len(t.spans) == 0 {
		return
	}

	span := t.spans[len(t.spans)-1]
	t.spans[len(t.spans)-1] = nil
	t.spans = t.spans[:len(t.spans)-1]
	t.ctxs = t.ctxs[:len(t.ctxs)-1]

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

// EffectRejected records the refused run as an error event on the running span.
func (t *Tracer) EffectRejected(id reactive.EffectID, err error) {
	if len(t.spans) == 0 {
		return
	}

	t.spans[len(t.spans)-1].RecordError(err, trace.WithAttributes(
		attribute.Int("reactive.rejected_effect_id", int(id)),
	))
}
