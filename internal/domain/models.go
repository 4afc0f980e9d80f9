package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RefinedOutput is the structured requirement breakdown produced by the
// analyzer or the fallback classifier. Every code path that yields one must
// satisfy Validate.
type RefinedOutput struct {
	PrimaryIntent          string   `json:"primaryIntent"`
	FunctionalExpectations []string `json:"functionalExpectations"`
	TechnicalConstraints   []string `json:"technicalConstraints"`
	ExpectedOutputs        []string `json:"expectedOutputs"`
	Ambiguities            []string `json:"ambiguities"`
	MissingInformation     []string `json:"missingInformation"`
	ConfidenceScore        float64  `json:"confidenceScore"`
}

// Normalize replaces nil slices with empty ones so the five sequence fields
// always serialize as arrays, never null.
func (o *RefinedOutput) Normalize() {
	if o.FunctionalExpectations == nil {
		o.FunctionalExpectations = []string{}
	}
	if o.TechnicalConstraints == nil {
		o.TechnicalConstraints = []string{}
	}
	if o.ExpectedOutputs == nil {
		o.ExpectedOutputs = []string{}
	}
	if o.Ambiguities == nil {
		o.Ambiguities = []string{}
	}
	if o.MissingInformation == nil {
		o.MissingInformation = []string{}
	}
}

// Validate checks the output contract: non-empty primary intent, all five
// sequence fields present, confidence score within [0,1].
func (o *RefinedOutput) Validate() error {
	if o.PrimaryIntent == "" {
		return ErrInvalidRefinedOutput
	}
	if o.FunctionalExpectations == nil || o.TechnicalConstraints == nil ||
		o.ExpectedOutputs == nil || o.Ambiguities == nil || o.MissingInformation == nil {
		return ErrInvalidRefinedOutput
	}
	if o.ConfidenceScore < 0 || o.ConfidenceScore > 1 {
		return ErrInvalidRefinedOutput
	}
	return nil
}

// Refinement is a persisted pipeline result. ID and CreatedAt are assigned
// by the repository, not the pipeline.
type Refinement struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	OriginalInput   string          `db:"original_input" json:"original_input"`
	InputType       InputType       `db:"input_type" json:"input_type"`
	RefinedOutput   json.RawMessage `db:"refined_output" json:"refined_output"`
	ConfidenceScore float64         `db:"confidence_score" json:"confidence_score"`
	Metadata        json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
