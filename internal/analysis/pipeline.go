package analysis

import (
	"context"
	"errors"
	"time"

	gogenai "github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/carecompass/platform/internal/genai"
	"github.com/carecompass/platform/internal/media"
	"github.com/carecompass/platform/internal/observability/metrics"
	"github.com/carecompass/platform/pkg/logging"
)

// Task parameterizes one run of the generic pipeline: the seven modules are
// all instances of the same encode-request-normalize sequence with different
// instructions and schemas.
type Task struct {
	Module      string
	ModelID     string
	Instruction string
	Schema      *gogenai.Schema
}

// Normalizer lets a result type clean up backend output before validation,
// such as re-spacing compressed identifier names.
type Normalizer interface {
	Normalize()
}

// Validator lets a result type enforce its contract on the decoded response.
// Returned errors should already carry an analysis Kind.
type Validator interface {
	Validate() error
}

// Pipeline runs schema-constrained inference calls with a bounded timeout.
type Pipeline struct {
	generator genai.Generator
	metrics   *metrics.InferenceMetrics
	logger    *logging.Logger
	timeout   time.Duration
	tracer    trace.Tracer
}

// NewPipeline creates a pipeline. A zero timeout falls back to 60s; the
// original system imposed no client-side bound, which left the UI hanging on
// slow backends.
func NewPipeline(generator genai.Generator, m *metrics.InferenceMetrics, logger *logging.Logger, timeout time.Duration) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Pipeline{
		generator: generator,
		metrics:   m,
		logger:    logger,
		timeout:   timeout,
		tracer:    otel.Tracer("carecompass.internal.analysis"),
	}
}

// Run executes one module analysis: media parts in selection order, then the
// instruction, then normalize-and-decode into out. Classified errors come
// back for the handler boundary to map; nothing here panics on bad backend
// output.
func (p *Pipeline) Run(ctx context.Context, task Task, attachments []media.Attachment, out any) error {
	ctx, span := p.tracer.Start(ctx, "analysis.run",
		trace.WithAttributes(attribute.String("module", task.Module)))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	for _, a := range attachments {
		p.metrics.ObserveAttachment(len(a.Data))
	}

	start := time.Now()
	raw, err := p.generator.Generate(ctx, genai.Request{
		ModelID:     task.ModelID,
		Instruction: task.Instruction,
		Schema:      task.Schema,
		Attachments: attachments,
	})
	p.metrics.ObserveLatency(task.Module, time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		p.metrics.ObserveRequest(task.Module, "error")
		p.logger.Error("inference call failed", "module", task.Module, "error", err)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return WrapError(KindTransport, "analysis timed out", err)
		case errors.Is(err, context.Canceled):
			return WrapError(KindTransport, "analysis cancelled", err)
		default:
			return WrapError(KindTransport, "analysis failed", err)
		}
	}

	if task.Schema != nil {
		if err := RequireKeys(raw, task.Schema.Required); err != nil {
			span.RecordError(err)
			p.metrics.ObserveRequest(task.Module, "invalid")
			p.logger.Warn("backend response is incomplete", "module", task.Module, "error", err)
			return err
		}
	}

	if err := DecodeResponse(raw, out); err != nil {
		span.RecordError(err)
		p.metrics.ObserveRequest(task.Module, "invalid")
		p.logger.Warn("backend response failed to parse", "module", task.Module, "error", err)
		return err
	}

	if n, ok := out.(Normalizer); ok {
		n.Normalize()
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			span.RecordError(err)
			p.metrics.ObserveRequest(task.Module, "invalid")
			p.logger.Warn("backend response failed validation", "module", task.Module, "error", err)
			return err
		}
	}

	p.metrics.ObserveRequest(task.Module, "success")
	return nil
}
