// Package gate filters degenerate text before it reaches the analyzer. It
// exists so an external-model call is never spent on content that cannot
// yield a meaningful refinement, and so callers get a specific rejection
// reason instead of a generic analysis.
package gate

import (
	"regexp"
	"strings"

	"refinery/internal/domain"
)

// irrelevantPatterns match greetings, acknowledgements, and filler that
// carry no buildable requirement.
var irrelevantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^hi+$`),
	regexp.MustCompile(`(?i)^hello+$`),
	regexp.MustCompile(`(?i)^hey+$`),
	regexp.MustCompile(`(?i)^thanks?$`),
	regexp.MustCompile(`(?i)^thank you$`),
	regexp.MustCompile(`(?i)^bye$`),
	regexp.MustCompile(`(?i)^goodbye$`),
	regexp.MustCompile(`(?i)^ok$`),
	regexp.MustCompile(`(?i)^okay$`),
	regexp.MustCompile(`(?i)^yes$`),
	regexp.MustCompile(`(?i)^no$`),
	regexp.MustCompile(`(?i)^lol$`),
	regexp.MustCompile(`(?i)^haha`),
	regexp.MustCompile(`^[.!?]+$`),
}

// intentKeywords is the fixed vocabulary that signals a buildable intent.
var intentKeywords = []string{
	"create", "build", "make", "develop", "design", "implement",
	"app", "application", "website", "system", "tool", "platform",
	"api", "backend", "frontend", "database", "function", "feature",
	"todo", "task", "list", "manage", "track", "store", "display",
}

// rule is one (predicate, rejection) pair. Rules are evaluated in order;
// the first match wins.
type rule struct {
	match   func(trimmed, lower string) bool
	reason  string
	message string
}

var rules = []rule{
	{
		match:   func(trimmed, _ string) bool { return len(trimmed) < 3 },
		reason:  domain.ReasonIrrelevantInput,
		message: "Input appears to be irrelevant or too brief. Please provide a clear description of what you want to build or create.",
	},
	{
		match: func(trimmed, _ string) bool {
			for _, p := range irrelevantPatterns {
				if p.MatchString(trimmed) {
					return true
				}
			}
			return false
		},
		reason:  domain.ReasonIrrelevantInput,
		message: "Input appears to be irrelevant or too brief. Please provide a clear description of what you want to build or create.",
	},
	{
		match:   func(trimmed, _ string) bool { return isRepeatedChar(trimmed) },
		reason:  domain.ReasonIrrelevantInput,
		message: "Input appears to be irrelevant or too brief. Please provide a clear description of what you want to build or create.",
	},
	{
		match: func(trimmed, lower string) bool {
			for _, kw := range intentKeywords {
				if strings.Contains(lower, kw) {
					return false
				}
			}
			return len(strings.Fields(trimmed)) < 5
		},
		reason:  domain.ReasonNoDetectableIntent,
		message: "Unable to detect a clear intent. Please provide more specific requirements about what you want to create or build.",
	},
}

// Assess decides whether text is analyzable. It returns nil to accept, or a
// RejectedInputError carrying the first matching rule's reason.
func Assess(text string) *domain.RejectedInputError {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, r := range rules {
		if r.match(trimmed, lower) {
			return &domain.RejectedInputError{Reason: r.reason, Message: r.message}
		}
	}
	return nil
}

// isRepeatedChar reports whether s is one rune repeated at least 11 times.
func isRepeatedChar(s string) bool {
	runes := []rune(s)
	if len(runes) < 11 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}
