package scoring

import "regexp"

var (
	marketingCoreTerms      = regexp.MustCompile(`(?i)\b(marketing|campaign|advertis\w*|promot\w*|brand\w*)\b`)
	marketingSecondaryTerms = regexp.MustCompile(`(?i)\b(audience|customer|engag\w*|conver\w*|social media)\b`)

	strategyCoreTerms      = regexp.MustCompile(`(?i)\b(strategy|strategic|business plan|roadmap|growth)\b`)
	strategySecondaryTerms = regexp.MustCompile(`(?i)\b(market|revenue|competit\w*|stakeholder\w*|objective\w*)\b`)

	actionVerbs       = regexp.MustCompile(`(?i)\b(create|generate|develop|build|design|write)\b`)
	qualityAdjectives = regexp.MustCompile(`(?i)\b(detailed|comprehensive|specific|professional|high-quality)\b`)
)

// ScorePromptQuality rates the submitted prompt itself, independent of any
// generated output. Base 60 with mutually exclusive length bands, two-tier
// round-specific vocabulary bonuses, and universal action/quality bonuses.
// The result is clamped to [20,100]: unlike the criteria evaluator, even a
// terse prompt keeps nonzero credit.
func ScorePromptQuality(prompt string, round int) float64 {
	score := 60.0

	words := WordCount(prompt)
	switch {
	case words < 5:
		score -= 30
	case words < 10:
		score -= 15
	case words > 15:
		score += 10
	}

	// Round 2 prompts are judged by the reverse-engineering rubric in the
	// live flow; no round-specific vocabulary is rewarded for it here.
	switch round {
	case 1:
		if marketingCoreTerms.MatchString(prompt) {
			score += 15
		}
		if marketingSecondaryTerms.MatchString(prompt) {
			score += 10
		}
	case 3:
		if strategyCoreTerms.MatchString(prompt) {
			score += 15
		}
		if strategySecondaryTerms.MatchString(prompt) {
			score += 10
		}
	}

	if actionVerbs.MatchString(prompt) {
		score += 5
	}
	if qualityAdjectives.MatchString(prompt) {
		score += 8
	}

	if score < 20 {
		score = 20
	}
	if score > 100 {
		score = 100
	}
	return score
}
