package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Criteria is the optional-field rubric applied to one generated output.
// A nil/empty field means that check is skipped entirely.
type Criteria struct {
	ExactWords       *int       `json:"exact_words,omitempty"`
	MaxWords         *int       `json:"max_words,omitempty"`
	RequirePrice     *bool      `json:"require_price,omitempty"`
	RequiredElements []string   `json:"required_elements,omitempty"`
	ForbiddenWords   []string   `json:"forbidden_words,omitempty"`
	Sentiment        *Sentiment `json:"sentiment,omitempty"`
}

// Merge overlays non-empty fields of override onto c, field by field.
// Caller-supplied criteria take precedence over catalog defaults.
func (c Criteria) Merge(override Criteria) Criteria {
	merged := c
	if override.ExactWords != nil {
		merged.ExactWords = override.ExactWords
	}
	if override.MaxWords != nil {
		merged.MaxWords = override.MaxWords
	}
	if override.RequirePrice != nil {
		merged.RequirePrice = override.RequirePrice
	}
	if len(override.RequiredElements) > 0 {
		merged.RequiredElements = override.RequiredElements
	}
	if len(override.ForbiddenWords) > 0 {
		merged.ForbiddenWords = override.ForbiddenWords
	}
	if override.Sentiment != nil {
		merged.Sentiment = override.Sentiment
	}
	return merged
}

// Result is the outcome of one evaluation: a clamped, rounded score, the
// ordered machine-parsable violation codes, and human-readable feedback.
type Result struct {
	Score      float64  `json:"score"`
	Violations []string `json:"violations"`
	Feedback   string   `json:"feedback"`
}

const criteriaBaseScore = 70.0

// EvaluateCriteria grades a generated output against the rubric. The score
// starts at a base of 70 and every configured check applies its penalty
// independently; checks never short-circuit each other. The running score is
// clamped at zero before the round multiplier is applied. There are no
// positive-scoring rules here, so the pre-multiplier score never exceeds the
// base.
func EvaluateCriteria(output string, criteria Criteria, multiplier float64) Result {
	score := criteriaBaseScore
	var violations []string

	words := WordCount(output)
	switch {
	case words < 10:
		violations = append(violations, "too_short")
		score -= 30
	case words < 20:
		violations = append(violations, "very_brief")
		score -= 15
	}

	if criteria.ExactWords != nil && words != *criteria.ExactWords {
		violations = append(violations, fmt.Sprintf("wordCount:%d/%d", words, *criteria.ExactWords))
		deviation := math.Abs(float64(words - *criteria.ExactWords))
		score -= math.Min(25, deviation*1.5)
	}

	if criteria.MaxWords != nil && words > *criteria.MaxWords {
		violations = append(violations, fmt.Sprintf("exceeded_maxWords:%d/%d", words, *criteria.MaxWords))
		excess := float64(words - *criteria.MaxWords)
		score -= math.Min(25, excess*1.2)
	}

	if criteria.RequirePrice != nil {
		hasPrice := ContainsPrice(output)
		// Omitting a required price is the common judging failure mode, so the
		// false negative costs more than the false positive.
		if *criteria.RequirePrice && !hasPrice {
			violations = append(violations, "missing_price")
			score -= 15
		} else if !*criteria.RequirePrice && hasPrice {
			violations = append(violations, "unexpected_price")
			score -= 5
		}
	}

	if len(criteria.RequiredElements) > 0 {
		if missing := FindMissingRequired(output, criteria.RequiredElements); len(missing) > 0 {
			violations = append(violations, "missing_elements:"+strings.Join(missing, ","))
			score -= 12 * float64(len(missing))
		}
	}

	if len(criteria.ForbiddenWords) > 0 {
		if matched := FindForbidden(output, criteria.ForbiddenWords); len(matched) > 0 {
			violations = append(violations, "forbidden_words:"+strings.Join(matched, ","))
			score -= 15 * float64(len(matched))
		}
	}

	if criteria.Sentiment != nil {
		if actual := ClassifySentiment(output); actual != *criteria.Sentiment {
			violations = append(violations, fmt.Sprintf("sentiment_mismatch:expected_%s_got_%s", *criteria.Sentiment, actual))
			score -= 8
		}
	}

	score = math.Max(0, score)
	score = round2(score * multiplier)

	return Result{
		Score:      score,
		Violations: violations,
		Feedback:   criteriaFeedback(violations, multiplier),
	}
}

func criteriaFeedback(violations []string, multiplier float64) string {
	summary := "none"
	if len(violations) > 0 {
		summary = strings.Join(violations, ", ")
	}
	return fmt.Sprintf("Violations: %s. Round %s multiplier applied.", summary, roundLabel(multiplier))
}

// roundLabel reverse-maps a multiplier to its round label. Multipliers outside
// the known table are labelled "custom" rather than guessed.
func roundLabel(multiplier float64) string {
	switch multiplier {
	case 1.0:
		return "1"
	case 1.5:
		return "2"
	case 2.0:
		return "3"
	default:
		return "custom"
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
