// Package fallback is the pipeline's termination guarantee: a rule-based
// classifier that always produces a valid RefinedOutput without any
// external dependency.
package fallback

import (
	"strings"

	"refinery/internal/domain"
)

// IsDocumentAnalysisRequest reports whether text asks for document analysis
// rather than describing something to build. Such text is routed straight
// to the fallback classifier; it is never sent to the external model.
func IsDocumentAnalysisRequest(text string) bool {
	t := strings.ToLower(text)
	return (strings.Contains(t, "analyze") || strings.Contains(t, "analysis")) &&
		(strings.Contains(t, "document") || strings.Contains(t, "file"))
}

// template is one (predicate, result) pair. Templates are evaluated in
// order; the first match wins, so the precedence below is load-bearing.
type template struct {
	match func(lower string) bool
	build func() *domain.RefinedOutput
}

var templates = []template{
	{
		match: IsDocumentAnalysisRequest,
		build: documentAnalysisTemplate,
	},
	{
		match: func(t string) bool {
			return strings.Contains(t, "store") || strings.Contains(t, "ecommerce") ||
				strings.Contains(t, "e-commerce") || strings.Contains(t, "shop") ||
				strings.Contains(t, "commerce")
		},
		build: ecommerceTemplate,
	},
	{
		match: func(t string) bool {
			return strings.Contains(t, "fitness") || strings.Contains(t, "workout")
		},
		build: fitnessTemplate,
	},
	{
		match: func(t string) bool {
			return strings.Contains(t, "todo") || strings.Contains(t, "task")
		},
		build: todoTemplate,
	},
}

// Classify maps text to a fixed RefinedOutput template. Total and pure:
// same inputs always yield the same result. File-derived text short-circuits
// to the uploaded-document template because extraction may be lossy.
func Classify(text string, isFileDerived bool) *domain.RefinedOutput {
	lower := strings.ToLower(text)

	if isFileDerived || strings.Contains(lower, "uploaded a file") {
		return uploadedDocumentTemplate()
	}

	for _, t := range templates {
		if t.match(lower) {
			return t.build()
		}
	}
	return genericTemplate()
}

func uploadedDocumentTemplate() *domain.RefinedOutput {
	return &domain.RefinedOutput{
		PrimaryIntent: "Analyze uploaded document",
		FunctionalExpectations: []string{
			"Extract key requirements from document",
			"Summarize objectives",
			"Identify functional needs",
		},
		TechnicalConstraints: []string{
			"Dependent on document quality",
			"Text extraction limitations",
		},
		ExpectedOutputs: []string{
			"Structured summary of document requirements",
		},
		Ambiguities: []string{
			"Document structure unclear",
		},
		MissingInformation: []string{
			"Explicit goals",
			"Target users",
		},
		ConfidenceScore: 0.6,
	}
}

func documentAnalysisTemplate() *domain.RefinedOutput {
	return &domain.RefinedOutput{
		PrimaryIntent: "Perform document analysis and information extraction",
		FunctionalExpectations: []string{
			"Parse and understand document content",
			"Extract structured information from documents",
			"Identify key data points and requirements",
			"Generate summary of findings",
		},
		TechnicalConstraints: []string{
			"Requires document upload capability",
			"Text extraction and NLP processing",
			"Support for multiple document formats",
		},
		ExpectedOutputs: []string{
			"Detailed document analysis report",
			"Extracted key information in structured format",
			"Summary of main points",
		},
		Ambiguities: []string{
			"Type of document not specified",
			"Level of analysis detail unclear",
		},
		MissingInformation: []string{
			"Actual document to analyze",
			"Specific information to extract",
			"Preferred output format",
		},
		ConfidenceScore: 0.7,
	}
}

func ecommerceTemplate() *domain.RefinedOutput {
	return &domain.RefinedOutput{
		PrimaryIntent: "Develop an e-commerce platform",
		FunctionalExpectations: []string{
			"Browse products",
			"Add to cart",
			"Checkout with payments",
		},
		TechnicalConstraints: []string{"Secure payment gateway"},
		ExpectedOutputs:      []string{"Online shopping platform"},
		Ambiguities:          []string{"Shipping flow not defined"},
		MissingInformation:   []string{"Payment provider"},
		ConfidenceScore:      0.9,
	}
}

func fitnessTemplate() *domain.RefinedOutput {
	return &domain.RefinedOutput{
		PrimaryIntent: "Build a fitness tracking mobile application",
		FunctionalExpectations: []string{
			"Track workouts",
			"Monitor fitness progress",
			"Store health data",
		},
		TechnicalConstraints: []string{"Mobile-first design"},
		ExpectedOutputs:      []string{"Fitness tracking application"},
		Ambiguities:          []string{},
		MissingInformation:   []string{"Target platform"},
		ConfidenceScore:      0.85,
	}
}

func todoTemplate() *domain.RefinedOutput {
	return &domain.RefinedOutput{
		PrimaryIntent: "Create a task management application",
		FunctionalExpectations: []string{
			"Add tasks",
			"Mark tasks complete",
			"View task list",
		},
		TechnicalConstraints: []string{"Web-based application"},
		ExpectedOutputs:      []string{"Todo list application"},
		Ambiguities:          []string{},
		MissingInformation:   []string{"User authentication"},
		ConfidenceScore:      0.8,
	}
}

func genericTemplate() *domain.RefinedOutput {
	return &domain.RefinedOutput{
		PrimaryIntent:          "Build a custom software solution",
		FunctionalExpectations: []string{"Analyze and implement requirements"},
		TechnicalConstraints:   []string{},
		ExpectedOutputs:        []string{"Working application"},
		Ambiguities:            []string{"Requirements are high-level"},
		MissingInformation:     []string{"Detailed feature list"},
		ConfidenceScore:        0.6,
	}
}
