package http

import (
	"context"
	"io"

	"strikingdistance/internal/services"
	"strikingdistance/internal/striking"
)

// OpportunityServiceInterface defines the pipeline operations the handler needs
type OpportunityServiceInterface interface {
	Analyze(ctx context.Context, req services.AnalyzeRequest) (*striking.Result, error)
	LoadUpload(r io.Reader, filename, table string) (*striking.Table, error)
}
