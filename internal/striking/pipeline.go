package striking

import (
	"context"
	"fmt"
	"log/slog"

	"strikingdistance/pkg/contracts/domain"
)

// Stats counts rows at each stage of a run
type Stats struct {
	Queries         int `json:"queries"`
	Keywords        int `json:"keywords"`
	Cannibalisation int `json:"cannibalisation"`
	Reduced         int `json:"reduced"`
	Joined          int `json:"joined"`
	InRange         int `json:"in_range"`
	AfterExclusion  int `json:"after_exclusion"`
	Output          int `json:"output"`
}

// Result is the outcome of a completed run. Rows is empty when an
// EmptyResult condition was raised.
type Result struct {
	Rows       []domain.OpportunityRow `json:"rows"`
	Conditions []Condition             `json:"conditions,omitempty"`
	Stats      Stats                   `json:"stats"`
}

// Empty reports whether the run produced no output table
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Has reports whether the run raised the given condition
func (r *Result) Has(code ConditionCode) bool {
	for _, c := range r.Conditions {
		if c.Code == code {
			return true
		}
	}
	return false
}

// Pipeline merges the three exports into a ranked opportunity list.
// It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a pipeline that logs through logger
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger.With(slog.String("component", "striking_pipeline"))}
}

// Run validates, joins, filters, scores and ranks the inputs. It returns an
// error only for fatal conditions (missing columns, invalid options); empty
// and degenerate outcomes are reported as conditions on the result.
func (p *Pipeline) Run(ctx context.Context, in Inputs, opts domain.Options) (*Result, error) {
	if err := ValidateOptions(opts); err != nil {
		p.logger.ErrorContext(ctx, "pipeline options rejected", slog.String("error", err.Error()))
		return nil, err
	}
	if err := ValidateTables(in); err != nil {
		p.logger.ErrorContext(ctx, "input tables failed column check", slog.String("error", err.Error()))
		return nil, err
	}

	queries := DecodeQueryPerformance(in.Queries)
	keywords := DecodeKeywordMetrics(in.Keywords)
	pages := DecodeCannibalisation(in.Cannibalisation)

	res := &Result{Stats: Stats{
		Queries:         len(queries),
		Keywords:        len(keywords),
		Cannibalisation: len(pages),
	}}

	if opts.CombineKeywords {
		pages = ReduceCannibalisation(pages)
	}
	res.Stats.Reduced = len(pages)

	joined := Join(queries, keywords, pages)
	res.Stats.Joined = len(joined)
	if len(joined) == 0 {
		return p.empty(ctx, res, "join", "no query matched both a keyword and a landing page"), nil
	}

	inRange := FilterRange(joined, opts.MinPosition, opts.MaxPosition)
	res.Stats.InRange = len(inRange)

	terms := ParseExclusions(opts.ExcludeKeywords)
	kept := FilterExclusions(inRange, terms)
	res.Stats.AfterExclusion = len(kept)

	p.logger.DebugContext(ctx, "filters applied",
		slog.Int("min_position", opts.MinPosition),
		slog.Int("max_position", opts.MaxPosition),
		slog.Int("out_of_range", len(joined)-len(inRange)),
		slog.Int("excluded", len(inRange)-len(kept)),
		slog.Any("exclusion_terms", terms))

	if len(kept) == 0 {
		return p.empty(ctx, res, "filter",
			fmt.Sprintf("no keyword ranked between positions %d and %d after exclusions", opts.MinPosition, opts.MaxPosition)), nil
	}

	scored, degenerate := Score(kept)
	if degenerate {
		c := Condition{
			Code:    DegenerateScore,
			Stage:   "score",
			Message: fmt.Sprintf("opportunity scores of %d row(s) have zero variance; z-scores set to 0", len(scored)),
		}
		res.Conditions = append(res.Conditions, c)
		p.logger.WarnContext(ctx, "degenerate opportunity scores", slog.String("condition", c.String()))
	}

	res.Rows = Project(scored)
	res.Stats.Output = len(res.Rows)

	p.logger.InfoContext(ctx, "pipeline completed",
		slog.Int("queries", res.Stats.Queries),
		slog.Int("keywords", res.Stats.Keywords),
		slog.Int("cannibalisation", res.Stats.Cannibalisation),
		slog.Int("joined", res.Stats.Joined),
		slog.Int("output", res.Stats.Output),
		slog.Bool("combine_keywords", opts.CombineKeywords))

	return res, nil
}

func (p *Pipeline) empty(ctx context.Context, res *Result, stage, msg string) *Result {
	c := Condition{Code: EmptyResult, Stage: stage, Message: msg}
	res.Conditions = append(res.Conditions, c)
	res.Rows = []domain.OpportunityRow{}
	p.logger.WarnContext(ctx, "pipeline produced no rows",
		slog.String("condition", c.String()),
		slog.Int("joined", res.Stats.Joined))
	return res
}
