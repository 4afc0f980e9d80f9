package analyzer

import "errors"

// The three ways an analysis attempt can fail. The orchestrator recovers
// from all of them by falling back to the deterministic classifier; none
// reach the caller.
var (
	// ErrModelUnavailable covers transport failures and non-200 responses
	// from the generative model provider.
	ErrModelUnavailable = errors.New("generative model unavailable")

	// ErrMalformedResponse covers responses with no parsable JSON object or
	// a JSON object that violates the output contract.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrGenericOutput marks responses that parse but carry boilerplate
	// instead of input-specific analysis.
	ErrGenericOutput = errors.New("generic model output")
)
