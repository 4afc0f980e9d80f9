package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"refinery/internal/domain"
)

// requiredFields are the seven keys every model response must carry.
var requiredFields = []string{
	"primaryIntent",
	"functionalExpectations",
	"technicalConstraints",
	"expectedOutputs",
	"ambiguities",
	"missingInformation",
	"confidenceScore",
}

// arrayFields are the five keys that must be JSON arrays.
var arrayFields = []string{
	"functionalExpectations",
	"technicalConstraints",
	"expectedOutputs",
	"ambiguities",
	"missingInformation",
}

// ParseRefinedOutput turns raw model text into a validated RefinedOutput.
//
// It extracts the first balanced {...} region, checks all seven contract
// fields are present, checks the five sequence fields are genuinely arrays,
// clamps an out-of-range or non-numeric confidence score to 0.5, and
// rejects near-generic output. Contract violations fail with
// ErrMalformedResponse; boilerplate fails with ErrGenericOutput.
func ParseRefinedOutput(raw string) (*domain.RefinedOutput, error) {
	region, ok := firstJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model text", ErrMalformedResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(region), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, f := range requiredFields {
		if _, present := fields[f]; !present {
			return nil, fmt.Errorf("%w: missing required field %q", ErrMalformedResponse, f)
		}
	}
	var out domain.RefinedOutput
	if err := json.Unmarshal(fields["primaryIntent"], &out.PrimaryIntent); err != nil {
		return nil, fmt.Errorf("%w: field %q is not a string", ErrMalformedResponse, "primaryIntent")
	}
	for _, f := range arrayFields {
		var arr []string
		if err := json.Unmarshal(fields[f], &arr); err != nil {
			return nil, fmt.Errorf("%w: field %q is not an array", ErrMalformedResponse, f)
		}
		switch f {
		case "functionalExpectations":
			out.FunctionalExpectations = arr
		case "technicalConstraints":
			out.TechnicalConstraints = arr
		case "expectedOutputs":
			out.ExpectedOutputs = arr
		case "ambiguities":
			out.Ambiguities = arr
		case "missingInformation":
			out.MissingInformation = arr
		}
	}

	// A non-numeric or out-of-range confidence is normalized, not failed.
	var score float64
	if err := json.Unmarshal(fields["confidenceScore"], &score); err != nil || score < 0 || score > 1 {
		score = 0.5
	}
	out.ConfidenceScore = score

	if strings.Contains(strings.ToLower(out.PrimaryIntent), "process user requirements") ||
		len(out.FunctionalExpectations) <= 1 {
		return nil, fmt.Errorf("%w: boilerplate analysis", ErrGenericOutput)
	}

	out.Normalize()
	return &out, nil
}

// firstJSONObject returns the first balanced {...} region of s, skipping
// braces inside string literals.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
