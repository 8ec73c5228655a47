package striking

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for pipeline failures
var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrInvalidOptions = errors.New("invalid pipeline options")
)

// TableColumns names the required columns a single table lacks
type TableColumns struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
}

// MissingColumnsError reports every table that failed its column contract
type MissingColumnsError struct {
	Missing []TableColumns
}

func (e *MissingColumnsError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s: %s", m.Table, strings.Join(m.Columns, ", ")))
	}
	return fmt.Sprintf("%s (%s)", ErrMissingColumns.Error(), strings.Join(parts, "; "))
}

// Is lets errors.Is match ErrMissingColumns
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// ConditionCode identifies a non-fatal pipeline condition
type ConditionCode string

const (
	// EmptyResult means no rows survived the joins or the filters
	EmptyResult ConditionCode = "EMPTY_RESULT"
	// DegenerateScore means opportunity scores had zero variance and
	// every z-score was emitted as 0
	DegenerateScore ConditionCode = "DEGENERATE_SCORE"
)

// Condition is a reportable warning attached to a completed run
type Condition struct {
	Code    ConditionCode `json:"code"`
	Stage   string        `json:"stage"`
	Message string        `json:"message"`
}

func (c Condition) String() string {
	return fmt.Sprintf("[%s] %s: %s", c.Code, c.Stage, c.Message)
}
