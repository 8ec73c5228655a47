package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"strikingdistance/internal/dataprocessing"
	"strikingdistance/internal/infrastructure"
	"strikingdistance/internal/striking"
	"strikingdistance/pkg/contracts/domain"
)

// AnalyzeRequest is one pipeline run. With Strict set, any raised condition
// fails the run instead of being reported on the result.
type AnalyzeRequest struct {
	Inputs  striking.Inputs
	Options domain.Options
	Strict  bool
}

// OpportunityService runs the striking distance pipeline with tracing and
// metrics around each run
type OpportunityService struct {
	pipeline *striking.Pipeline
	loader   *dataprocessing.Loader
	tracer   trace.Tracer
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
}

// NewOpportunityService creates the service. A nil tracer or metrics
// disables that signal.
func NewOpportunityService(tracer trace.Tracer, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *OpportunityService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}
	if metrics == nil {
		metrics = infrastructure.NoopPipelineMetrics()
	}

	return &OpportunityService{
		pipeline: striking.NewPipeline(logger),
		loader:   dataprocessing.NewLoader(logger),
		tracer:   tracer,
		metrics:  metrics,
		logger:   infrastructure.WithComponent(logger, "opportunity_service"),
	}
}

// Analyze runs the pipeline over already loaded tables
func (s *OpportunityService) Analyze(ctx context.Context, req AnalyzeRequest) (*striking.Result, error) {
	ctx, span := s.tracer.Start(ctx, "striking.run",
		trace.WithAttributes(
			attribute.Int("options.min_position", req.Options.MinPosition),
			attribute.Int("options.max_position", req.Options.MaxPosition),
			attribute.Bool("options.combine_keywords", req.Options.CombineKeywords),
			attribute.Bool("options.strict", req.Strict),
		))
	defer span.End()

	start := time.Now()

	if err := ctx.Err(); err != nil {
		s.finish(ctx, span, infrastructure.OutcomeError, start, 0, err)
		return nil, err
	}

	res, err := s.pipeline.Run(ctx, req.Inputs, req.Options)
	if err != nil {
		err = classifyRunError(err)
		s.finish(ctx, span, infrastructure.OutcomeRejected, start, 0, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("stats.queries", res.Stats.Queries),
		attribute.Int("stats.keywords", res.Stats.Keywords),
		attribute.Int("stats.cannibalisation", res.Stats.Cannibalisation),
		attribute.Int("stats.joined", res.Stats.Joined),
		attribute.Int("stats.in_range", res.Stats.InRange),
		attribute.Int("stats.output", res.Stats.Output),
	)
	for _, c := range res.Conditions {
		infrastructure.AddSpanEvent(ctx, "condition",
			attribute.String("code", string(c.Code)),
			attribute.String("stage", c.Stage),
		)
	}

	outcome := outcomeOf(res)
	if req.Strict && len(res.Conditions) > 0 {
		err := conditionError(res.Conditions[0])
		s.finish(ctx, span, outcome, start, res.Stats.Output, err)
		return nil, err
	}

	s.finish(ctx, span, outcome, start, res.Stats.Output, nil)
	return res, nil
}

// AnalyzeFiles loads the three exports from disk and runs the pipeline
func (s *OpportunityService) AnalyzeFiles(ctx context.Context, paths dataprocessing.Paths, opts domain.Options, strict bool) (*striking.Result, error) {
	in, err := s.loader.LoadInputs(ctx, paths)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load inputs", slog.String("error", err.Error()))
		s.metrics.RecordRun(ctx, infrastructure.OutcomeError, 0, 0)
		return nil, classifyLoadError(err)
	}

	return s.Analyze(ctx, AnalyzeRequest{Inputs: in, Options: opts, Strict: strict})
}

// LoadUpload decodes one uploaded export, picking CSV or XLSX by filename
func (s *OpportunityService) LoadUpload(r io.Reader, filename, table string) (*striking.Table, error) {
	t, err := dataprocessing.LoadReader(r, filename, table)
	if err != nil {
		return nil, classifyLoadError(err)
	}
	return t, nil
}

func (s *OpportunityService) finish(ctx context.Context, span trace.Span, outcome string, start time.Time, rows int, err error) {
	duration := time.Since(start)
	s.metrics.RecordRun(ctx, outcome, duration, rows)
	span.SetAttributes(attribute.String("outcome", outcome))

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "run failed",
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
		return
	}

	s.logger.InfoContext(ctx, "run finished",
		slog.String("outcome", outcome),
		slog.Int("rows", rows),
		slog.Duration("duration", duration))
}

func outcomeOf(res *striking.Result) string {
	switch {
	case res.Has(striking.EmptyResult):
		return infrastructure.OutcomeEmpty
	case res.Has(striking.DegenerateScore):
		return infrastructure.OutcomeDegenerate
	default:
		return infrastructure.OutcomeSuccess
	}
}
