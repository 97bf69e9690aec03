package scoring

import (
	"fmt"
	"math"
	"strings"
)

var (
	reconstructionMarkers = []string{"prompt", "ask", "write", "create"}
	reasoningMarkers      = []string{"because", "likely", "suggests", "indicates", "reasoning"}
	analysisMarkers       = []string{"style", "format", "structure", "detail"}
	domainContextMarkers  = []string{"recipe", "cooking", "baking", "ingredients"}
)

// EvaluateReverseEngineering grades a round-2 "reconstruct the original
// prompt" response. It judges the team's submitted text directly, not any
// generated output. Base 100 with marker-driven deductions; marker matching
// is lenient substring containment so inflected forms like "asked" count.
// The analysis bonus is deliberately uncapped, so a thorough answer can
// exceed the nominal 100 before the round multiplier.
func EvaluateReverseEngineering(response string) Result {
	lower := strings.ToLower(response)
	score := 100.0
	var violations []string

	if !containsAny(lower, reconstructionMarkers) {
		violations = append(violations, "no_prompt_reconstruction")
		score -= 30
	}
	if !containsAny(lower, reasoningMarkers) {
		violations = append(violations, "no_reasoning")
		score -= 25
	}
	if containsAny(lower, analysisMarkers) {
		score += 10
	}
	if !containsAny(lower, domainContextMarkers) {
		violations = append(violations, "no_context_understanding")
		score -= 15
	}

	score = math.Max(0, score)

	summary := "none"
	if len(violations) > 0 {
		summary = strings.Join(violations, ", ")
	}

	return Result{
		Score:      round2(score),
		Violations: violations,
		Feedback:   fmt.Sprintf("Reverse-engineering violations: %s.", summary),
	}
}

func containsAny(lower string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
