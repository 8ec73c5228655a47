package exporter

import (
	"encoding/json"
	"io"

	"strikingdistance/internal/striking"
	"strikingdistance/pkg/contracts/domain"
)

// Envelope is the JSON shape of a completed run
type Envelope struct {
	Status     string                  `json:"status"`
	Data       []domain.OpportunityRow `json:"data"`
	Count      int                     `json:"count"`
	Conditions []striking.Condition    `json:"conditions"`
	Stats      striking.Stats          `json:"stats"`
}

// NewEnvelope wraps a result. Rows and conditions are never null.
func NewEnvelope(res *striking.Result) Envelope {
	rows := res.Rows
	if rows == nil {
		rows = []domain.OpportunityRow{}
	}
	conditions := res.Conditions
	if conditions == nil {
		conditions = []striking.Condition{}
	}
	return Envelope{
		Status:     "success",
		Data:       rows,
		Count:      len(rows),
		Conditions: conditions,
		Stats:      res.Stats,
	}
}

// WriteJSON writes the envelope of res as indented JSON
func WriteJSON(w io.Writer, res *striking.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewEnvelope(res))
}
