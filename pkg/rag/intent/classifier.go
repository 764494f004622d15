package intent

import (
	"strconv"
	"strings"
)

// Kind is the routing decision for one user input.
type Kind string

const (
	KindRank       Kind = "RANK"       // bare positive integer
	KindPercentile Kind = "PERCENTILE" // float in (0,100], optionally with a college name
	KindFreeText   Kind = "FREE_TEXT"  // everything else
)

// Intent is the parsed form of a raw user input.
type Intent struct {
	Kind       Kind
	Rank       int
	Percentile float64
	College    string // only for KindPercentile, may be empty
	RawQuery   string
}

// maxPercentileTokens bounds how long an input may be and still count as a
// "percentile + college name" request instead of a question.
const maxPercentileTokens = 6

// Classify decides how a raw input should be routed. Precedence is fixed:
//  1. The whole input parses as a positive integer -> rank.
//  2. The whole input parses as a float in (0,100] -> percentile.
//  3. The input is short, contains exactly one decimal number in (0,100],
//     and is not phrased as a question -> percentile + college name.
//  4. Anything else -> free text.
func Classify(raw string) *Intent {
	trimmed := strings.TrimSpace(raw)

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n > 0 {
			return &Intent{Kind: KindRank, Rank: n, RawQuery: raw}
		}
		// Non-positive integers are nonsense as ranks; let the caller ask for
		// clarification via the free-text path.
		return &Intent{Kind: KindFreeText, RawQuery: raw}
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if f > 0 && f <= 100 {
			return &Intent{Kind: KindPercentile, Percentile: f, RawQuery: raw}
		}
		return &Intent{Kind: KindFreeText, RawQuery: raw}
	}

	if intent, ok := parsePercentileWithCollege(trimmed); ok {
		intent.RawQuery = raw
		return intent
	}

	return &Intent{Kind: KindFreeText, RawQuery: raw}
}

// parsePercentileWithCollege matches inputs like "98.5 COEP" or
// "Pune COEP 99.25". The decimal point is required so counting questions
// ("top 5 colleges in Pune") stay on the free-text path.
func parsePercentileWithCollege(trimmed string) (*Intent, bool) {
	if strings.ContainsAny(trimmed, "?") {
		return nil, false
	}

	tokens := strings.Fields(trimmed)
	if len(tokens) < 2 || len(tokens) > maxPercentileTokens {
		return nil, false
	}

	numIdx := -1
	var value float64
	for i, tok := range tokens {
		if !strings.Contains(tok, ".") {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			continue
		}
		if numIdx >= 0 {
			// Two numbers is ambiguous; don't guess.
			return nil, false
		}
		numIdx = i
		value = f
	}

	if numIdx < 0 || value <= 0 || value > 100 {
		return nil, false
	}

	rest := make([]string, 0, len(tokens)-1)
	for i, tok := range tokens {
		if i != numIdx {
			rest = append(rest, tok)
		}
	}

	return &Intent{
		Kind:       KindPercentile,
		Percentile: value,
		College:    strings.Join(rest, " "),
	}, true
}
