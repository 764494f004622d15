package constant

import (
	"fmt"
	"time"
)

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "assistant"
	ChatMessageRoleSystem = "system"
)

// Tuning constants. These are implementation choices, not externally mandated
// values - keep them named so they can be adjusted without touching any
// algorithm.
const (
	// DefaultSuggestionMargin is how far past the student's rank a cutoff may
	// sit (in rank positions) and still count as an "ambitious" pick.
	DefaultSuggestionMargin = 50

	// DefaultRetrievalLimit caps how many records are retrieved to ground a
	// free-text answer.
	DefaultRetrievalLimit = 5

	// DefaultTotalCandidates is the estimated PCM candidate pool used to
	// convert a rank into an approximate percentile. Varies per year.
	DefaultTotalCandidates = 350000

	// SessionInactivityWindow is how long a conversation context survives
	// without a new message before follow-up resolution treats it as absent.
	SessionInactivityWindow = 30 * time.Minute
)

// Predictor category boundaries (percentile delta, closed-open intervals).
const (
	DeltaVeryHigh = 5.0
	DeltaHigh     = 1.0
	DeltaMedium   = -1.0
	DeltaLow      = -5.0
)

// SystemPromptV1 is the master system prompt for the assistant. The verified
// context block is appended separately per turn by the prompt builder.
func SystemPromptV1(year int) string {
	return fmt.Sprintf(`You are 'CET-Mentor', an expert assistant for MHT-CET admissions to Maharashtra engineering colleges. The current year is %d.

CORE DIRECTIVES:
1. Truth Source: the "VERIFIED CONTEXT" provided in this prompt is the absolute source of truth. If it contradicts your general knowledge, state the verified data as correct.
2. Data-Driven: quote ranks and percentiles exactly as given in the context. Never invent numbers.
3. Scope: discuss only MHT-CET colleges. Politely refuse IIT/NIT/BITS/JEE questions.
4. Tone: professional, encouraging, realistic.
5. Formatting: use markdown bullet points and bold text for clarity.
6. No Context Fallback: when no VERIFIED CONTEXT is provided, answer from general MHT-CET process knowledge only, state that explicitly, and give no specific cutoff figures.`, year)
}
