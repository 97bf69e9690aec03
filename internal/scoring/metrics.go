package scoring

import (
	"fmt"
	"regexp"
	"strings"
)

// Sentiment is the coarse tone class assigned to a piece of text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

var (
	wordPattern = regexp.MustCompile(`\w+`)

	// Currency detection is a disjunction of locale-specific patterns so new
	// locales can be added without disturbing existing matches.
	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$\s*\d+(?:[.,]\d+)?`),
		regexp.MustCompile(`(?i)(?:Rs|INR)\.?\s*\d+(?:[.,]\d+)?`),
		regexp.MustCompile(`\d+(?:[.,]\d+)?\s*₹`),
	}

	positiveWords = []string{"great", "good", "excellent", "amazing", "love", "best", "happy", "wonderful", "fantastic", "perfect"}
	negativeWords = []string{"bad", "poor", "terrible", "awful", "hate", "worst", "disappointing", "horrible", "broken", "useless"}
)

// WordCount returns the number of word runs in text. Empty text counts zero.
func WordCount(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(wordPattern.FindAllString(text, -1))
}

// FindForbidden returns the subset of words that occur in text as whole words,
// case-insensitively. The order of the input list is preserved.
func FindForbidden(text string, words []string) []string {
	if len(words) == 0 {
		return nil
	}
	var matched []string
	for _, word := range words {
		if word == "" {
			continue
		}
		if wholeWordMatch(text, word) {
			matched = append(matched, word)
		}
	}
	return matched
}

// FindMissingRequired returns the required elements that do not occur in text.
// Matching is case-insensitive substring containment, not whole-word, so
// symbols like "₹" and fragments like "mAh" count.
func FindMissingRequired(text string, elements []string) []string {
	lower := strings.ToLower(text)
	var missing []string
	for _, element := range elements {
		if element == "" {
			continue
		}
		if !strings.Contains(lower, strings.ToLower(element)) {
			missing = append(missing, element)
		}
	}
	return missing
}

// ContainsPrice reports whether text carries a recognisable price token.
func ContainsPrice(text string) bool {
	for _, pattern := range pricePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// ClassifySentiment assigns a coarse sentiment by counting hits from fixed
// positive and negative word lists. Whichever count is strictly larger wins;
// ties and no hits are neutral. No negation handling.
func ClassifySentiment(text string) Sentiment {
	positives := countWholeWordHits(text, positiveWords)
	negatives := countWholeWordHits(text, negativeWords)

	switch {
	case positives > negatives:
		return SentimentPositive
	case negatives > positives:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func countWholeWordHits(text string, words []string) int {
	total := 0
	for _, word := range words {
		pattern := wholeWordPattern(word)
		if pattern == nil {
			continue
		}
		total += len(pattern.FindAllString(text, -1))
	}
	return total
}

func wholeWordMatch(text, word string) bool {
	pattern := wholeWordPattern(word)
	return pattern != nil && pattern.MatchString(text)
}

func wholeWordPattern(word string) *regexp.Regexp {
	pattern, err := regexp.Compile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(word)))
	if err != nil {
		return nil
	}
	return pattern
}
