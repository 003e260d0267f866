package telemetry

import (
	"context"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"heartgate/internal/card"
)

// Observer implements card.Observer by logging, tracing and counting every
// session change. Each screen gets its own span; interactions on that screen
// are recorded as span events.
type Observer struct {
	ctx     context.Context
	tracer  *Tracer
	metrics *Metrics
	logger  *slog.Logger

	root   oteltrace.Span
	screen oteltrace.Span
}

var _ card.Observer = (*Observer)(nil)

// NewObserver creates an observer. Nil tracer, metrics or logger are
// replaced with no-op implementations.
func NewObserver(ctx context.Context, tracer *Tracer, metrics *Metrics, logger *slog.Logger) *Observer {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Observer{ctx: ctx, tracer: tracer, metrics: metrics, logger: logger}
}

// Start opens the session span and the span of the first screen.
func (o *Observer) Start(s *card.Session) {
	ctx, root := o.tracer.tracer.Start(o.ctx, "heartgate.session",
		oteltrace.WithAttributes(attribute.String("heartgate.session.id", s.ID)))
	o.ctx = ctx
	o.root = root
	o.openScreen(s.Screen)
	o.logger.Info("session started", "session", s.ID, "screen", s.Screen.String())
}

// End closes any open spans.
func (o *Observer) End(s *card.Session) {
	if o.screen != nil {
		o.screen.End()
		o.screen = nil
	}
	if o.root != nil {
		o.root.SetAttributes(
			attribute.Int("heartgate.no.dodges", s.Dodges),
			attribute.Float64("heartgate.yes.scale", s.YesButtonScale),
		)
		o.root.End()
		o.root = nil
	}
	o.logger.Info("session ended", "session", s.ID, "screen", s.Screen.String(), "dodges", s.Dodges)
}

func (o *Observer) openScreen(screen card.Screen) {
	_, o.screen = o.tracer.tracer.Start(o.ctx, "heartgate.screen."+screen.String())
}

// Transition implements card.Observer.
func (o *Observer) Transition(s *card.Session, from, to card.Screen) {
	if o.screen != nil {
		o.screen.End()
	}
	o.openScreen(to)
	o.metrics.transitions.WithLabelValues(from.String(), to.String()).Inc()
	if from == card.ScreenPassword {
		o.metrics.submits.WithLabelValues("accepted").Inc()
	}
	o.logger.Info("screen changed", "session", s.ID, "from", from.String(), "to", to.String())
}

// PasswordRejected implements card.Observer. The typed value is never recorded.
func (o *Observer) PasswordRejected(s *card.Session) {
	o.metrics.submits.WithLabelValues("rejected").Inc()
	o.event("password.rejected")
	o.logger.Debug("password rejected", "session", s.ID, "length", len([]rune(s.PasswordInput)))
}

// Dodged implements card.Observer.
func (o *Observer) Dodged(s *card.Session) {
	o.metrics.dodges.Inc()
	o.metrics.yesScale.Set(s.YesButtonScale)
	o.event("no.dodged",
		attribute.Float64("heartgate.no.x", s.NoButtonOffset.X),
		attribute.Float64("heartgate.no.y", s.NoButtonOffset.Y),
		attribute.Float64("heartgate.yes.scale", s.YesButtonScale),
	)
	o.logger.Debug("no dodged", "session", s.ID, "dodges", s.Dodges, "scale", s.YesButtonScale)
}

// SlotFallback implements card.Observer.
func (o *Observer) SlotFallback(s *card.Session, slot card.Slot) {
	o.metrics.slotFallback.Inc()
	o.event("gallery.fallback",
		attribute.Int("heartgate.slot.index", slot.Index),
		attribute.String("heartgate.slot.ref", slot.Ref),
	)
	o.logger.Debug("slot fell back to placeholder", "session", s.ID,
		"slot", strconv.Itoa(slot.Index), "ref", slot.Ref)
}

func (o *Observer) event(name string, attrs ...attribute.KeyValue) {
	if o.screen == nil {
		return
	}
	o.screen.AddEvent(name, oteltrace.WithAttributes(attrs...))
}
