// Package striking finds "striking distance" keywords: queries ranking just
// outside the top positions with a strong opportunity to improve.
//
// A run merges three exports held fully in memory:
//
//	QueryPerformance      Top queries, Position
//	KeywordMetrics        Keyword, Volume, Difficulty, Intents
//	CannibalisationExport Query, Landing Page, Impressions
//
// and moves through a fixed sequence of stages:
//
//	Validate → Decode → (Reduce) → Join → Filter(range) → Filter(exclusion) → Score → Project
//
// Missing columns and invalid options abort the run with an error. Joins or
// filters that leave no rows, and scores with zero variance, complete the run
// with a Condition attached to the Result.
//
// Usage:
//
//	p := striking.NewPipeline(logger)
//	res, err := p.Run(ctx, striking.Inputs{Queries: q, Keywords: k, Cannibalisation: c}, domain.DefaultOptions())
package striking
