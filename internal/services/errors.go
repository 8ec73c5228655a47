package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	apierrors "strikingdistance/internal/errors"
	"strikingdistance/internal/striking"
)

// classifyRunError converts a pipeline error into an AppError the HTTP
// layer can render. Context errors pass through unchanged.
func classifyRunError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var mc *striking.MissingColumnsError
	if errors.As(err, &mc) {
		return apierrors.NewMissingColumnsError("Input files are missing required columns", err).
			WithContext("missing", mc.Missing)
	}

	if errors.Is(err, striking.ErrInvalidOptions) {
		return apierrors.NewInvalidOptionsError("Invalid pipeline options", err)
	}

	return fmt.Errorf("pipeline run failed: %w", err)
}

// classifyLoadError converts an input loading error into an AppError
func classifyLoadError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, os.ErrNotExist) {
		return apierrors.NewNotFoundError("Input file", err)
	}

	return apierrors.NewParsingError("Could not read input file", err)
}

// conditionError converts a raised condition into an AppError for strict runs
func conditionError(c striking.Condition) error {
	errType := apierrors.ErrTypeEmptyResult
	if c.Code == striking.DegenerateScore {
		errType = apierrors.ErrTypeDegenerateScore
	}
	return apierrors.NewAppError(errType, c.Message, nil).
		WithContext("stage", c.Stage)
}
