package contact

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tradition-dev/site/pkg/pref"
)

// tracerName is the instrumentation name used when no tracer is given.
const tracerName = "github.com/tradition-dev/site/pkg/contact"

// Option configures a Handler.
type Option func(*Handler)

// WithRules replaces the default rules.
func WithRules(rules RuleSet) Option {
	return func(h *Handler) {
		h.rules = rules
	}
}

// WithView sets the presentation surface. Default: NopView.
func WithView(v View) Option {
	return func(h *Handler) {
		h.view = v
	}
}

// WithNamePref remembers the submitter's name across visits. Restore reads
// it and an accepted submit writes the trimmed name back.
func WithNamePref(p *pref.Pref[string]) Option {
	return func(h *Handler) {
		h.name = p
	}
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithMetrics records validation counters.
func WithMetrics(m *Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithTracer sets the tracer for submit spans. Default: the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(h *Handler) {
		h.tracer = t
	}
}

// Handler reacts to the form's browser events. Each method runs to
// completion under a lock, so events are applied one at a time in the
// order they arrive.
type Handler struct {
	mu sync.Mutex

	form    *Form
	rules   RuleSet
	view    View
	name    *pref.Pref[string]
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// NewHandler creates a Handler around a fresh, empty form.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	if h.view == nil {
		h.view = NopView{}
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.tracer == nil {
		h.tracer = otel.Tracer(tracerName)
	}
	h.form = NewForm(h.rules, h.view)
	return h
}

// Form returns the underlying form. Callers must not use it concurrently
// with the Handler's event methods.
func (h *Handler) Form() *Form {
	return h.form
}

// Restore pre-fills the name field with the name remembered from an
// earlier accepted submission. Read failures are logged and ignored.
func (h *Handler) Restore(ctx context.Context) {
	if h.name == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	name, err := h.name.Load(ctx)
	if err != nil {
		h.logger.Warn("contact: remembered name unavailable", "key", h.name.Key(), "error", err)
		return
	}
	if name == "" {
		return
	}
	h.form.SetValue(FieldName, name)
	h.logger.Debug("contact: name restored", "key", h.name.Key())
}

// Input handles a content change on a field.
func (h *Handler) Input(id FieldID, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.form.Input(id, value)
}

// Blur handles a field losing focus: the field is validated on its own and,
// if it fails, brought into view. Unknown fields are ignored.
func (h *Handler) Blur(ctx context.Context, id FieldID) {
	if _, ok := ParseFieldID(string(id)); !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.form.ValidateField(id)
	failed := h.form.HasError(id)
	h.metrics.recordBlur(id, failed)
	if failed {
		h.view.ScrollIntoView(string(id))
	}
}

// Submit validates every field. Only when all pass does it show the
// success panel, log the values, remember the name and reset the form.
// Otherwise nothing but the error flags changes and the first failing
// field is brought into view.
func (h *Handler) Submit(ctx context.Context) Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, span := h.tracer.Start(ctx, "contact.submit", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	res := h.form.Validate()
	h.metrics.recordSubmit(res)
	span.SetAttributes(
		attribute.String("contact.outcome", outcome(res)),
		attribute.Int("contact.failed_fields", len(res.failures)),
	)

	if first, ok := res.First(); ok {
		span.SetAttributes(attribute.String("contact.first_error", string(first.Field)))
		span.SetStatus(codes.Error, "validation failed")
		h.view.ScrollIntoView(string(first.Field))
		h.logger.Debug("contact: submission rejected", "fields", fieldList(res.Fields()))
		return res
	}

	values := h.form.Values().Trimmed()

	h.view.ShowSuccess()
	h.view.ScrollIntoView(SuccessTarget)

	h.logger.Info("contact form submitted",
		slog.Group("submission",
			slog.String("name", values.Name),
			slog.String("email", values.Email),
			slog.String("phone", values.Phone),
			slog.String("subject", values.Subject),
			slog.String("message", values.Message),
		),
	)

	if h.name != nil {
		if err := h.name.Set(ctx, values.Name); err != nil {
			span.RecordError(err)
			h.logger.Warn("contact: could not remember name", "key", h.name.Key(), "error", err)
		}
	}

	h.form.Reset()
	span.SetStatus(codes.Ok, "")
	return res
}

func fieldList(ids []FieldID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}
