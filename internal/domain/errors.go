package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrSourceUnreadable     = errors.New("uploaded file could not be found")
	ErrSourceEmpty          = errors.New("uploaded file is empty")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrExtractionFailed     = errors.New("text extraction failed")
	ErrInvalidRefinedOutput = errors.New("refined output violates contract")
)

// Rejection reason codes surfaced to the caller by the input quality gate.
const (
	ReasonIrrelevantInput    = "irrelevant_input"
	ReasonNoDetectableIntent = "no_detectable_intent"
)

// RejectedInputError is the quality gate's verdict on unanalyzable input.
// It carries the specific reason code and a user-facing message.
type RejectedInputError struct {
	Reason  string
	Message string
}

func (e *RejectedInputError) Error() string {
	return "input rejected (" + e.Reason + "): " + e.Message
}
