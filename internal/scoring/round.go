package scoring

import "fmt"

// EvalMode selects how a round's submissions are judged.
type EvalMode int

const (
	// ModeOutputCriteria blends the criteria evaluation of the generated
	// output with the prompt quality heuristic.
	ModeOutputCriteria EvalMode = iota
	// ModeReverseEngineering applies the reverse-engineering rubric to the
	// submitted prompt text itself.
	ModeReverseEngineering
)

// RoundSpec describes one competition round: its difficulty multiplier and
// how its submissions are evaluated.
type RoundSpec struct {
	Multiplier float64
	Mode       EvalMode
}

// PassingThreshold is the final, multiplier-applied score a submission must
// reach to count toward a team's total and to complete a round.
const PassingThreshold = 60.0

var roundTable = map[int]RoundSpec{
	1: {Multiplier: 1.0, Mode: ModeOutputCriteria},
	2: {Multiplier: 1.5, Mode: ModeReverseEngineering},
	3: {Multiplier: 2.0, Mode: ModeOutputCriteria},
}

// SpecForRound returns the round's spec. Unknown rounds fall back to the
// round-1 behaviour (multiplier 1.0, output-criteria mode) rather than
// failing; the permissive default is deliberate.
func SpecForRound(round int) RoundSpec {
	if spec, ok := roundTable[round]; ok {
		return spec
	}
	return RoundSpec{Multiplier: 1.0, Mode: ModeOutputCriteria}
}

const (
	outputWeight = 0.6
	promptWeight = 0.4
)

// ScoreSubmission merges the per-round evaluators into one final result and
// decides pass/fail against PassingThreshold.
//
// Round 2 scores the prompt through the reverse-engineering rubric and the
// generated output is ignored. All other rounds evaluate the output with the
// multiplier deferred to the blend step, so it is applied exactly once.
func ScoreSubmission(prompt, output string, round int, criteria Criteria) (Result, bool) {
	spec := SpecForRound(round)

	var result Result
	switch spec.Mode {
	case ModeReverseEngineering:
		result = EvaluateReverseEngineering(prompt)
		result.Score = round2(result.Score * spec.Multiplier)
		result.Feedback = fmt.Sprintf("%s Multiplier %.1fx applied.", result.Feedback, spec.Multiplier)
	default:
		outputResult := EvaluateCriteria(output, criteria, 1.0)
		promptScore := ScorePromptQuality(prompt, round)
		combined := outputWeight*outputResult.Score + promptWeight*promptScore

		result = Result{
			Score:      round2(combined * spec.Multiplier),
			Violations: outputResult.Violations,
			Feedback: fmt.Sprintf("%s Prompt quality: %.2f. Combined: %.2f. Multiplier %.1fx applied.",
				outputResult.Feedback, promptScore, round2(combined), spec.Multiplier),
		}
	}

	passed := result.Score >= PassingThreshold
	if !passed {
		result.Feedback = fmt.Sprintf("%s Score below the %.0f-point passing threshold.", result.Feedback, PassingThreshold)
	}
	return result, passed
}
