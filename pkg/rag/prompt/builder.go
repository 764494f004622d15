package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/pkg/llm"
	ragcontext "cet-mentor-be/pkg/rag/context"
)

// GroundedBuilder renders a context bundle into the prompt the generation
// step sees. Everything inside <verified_context> is the model's only
// permitted source of numbers.
type GroundedBuilder struct {
	bundle *ragcontext.ContextBundle
	query  string
}

func NewGroundedBuilder(bundle *ragcontext.ContextBundle, query string) *GroundedBuilder {
	return &GroundedBuilder{
		bundle: bundle,
		query:  query,
	}
}

// Build creates the full user-turn prompt for one chat turn.
func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	b.writeVerifiedContext(&prompt)
	b.writeTask(&prompt)
	b.writeUserQuery(&prompt)

	return prompt.String()
}

func (b *GroundedBuilder) writeVerifiedContext(prompt *strings.Builder) {
	if b.bundle == nil || !b.bundle.Grounded {
		prompt.WriteString("<verified_context>\n")
		prompt.WriteString("NO VERIFIED DATA was found for this question.\n")
		prompt.WriteString("</verified_context>\n\n")
		return
	}

	prompt.WriteString("<verified_context>\n")
	prompt.WriteString("CRITICAL: This is the ONLY source of cutoffs, ranks and percentiles. Do NOT use outside knowledge for numbers.\n\n")

	if s := b.bundle.Suggestion; s != nil {
		prompt.WriteString(fmt.Sprintf("Student rank: %d (approx. percentile %s)\n\n", s.UserRank, formatFloat(s.UserPercentile)))
		if len(s.Safe) > 0 {
			prompt.WriteString("SAFE OPTIONS (last year's cutoff rank was equal or worse than the student's rank):\n")
			for _, r := range s.Safe {
				prompt.WriteString(formatRecord(r))
			}
			prompt.WriteString("\n")
		}
		if len(s.Ambitious) > 0 {
			prompt.WriteString("AMBITIOUS OPTIONS (cutoff slightly better than the student's rank):\n")
			for _, r := range s.Ambitious {
				prompt.WriteString(formatRecord(r))
			}
			prompt.WriteString("\n")
		}
	}

	if p := b.bundle.Prediction; p != nil {
		prompt.WriteString("ADMISSION PREDICTION:\n")
		prompt.WriteString(formatRecord(p.Record))
		prompt.WriteString(fmt.Sprintf("Chance category: %s (percentile delta %s)\n\n", p.Category, formatFloat(p.Delta)))
	}

	if len(b.bundle.RetrievedRecords) > 0 && b.bundle.Prediction == nil {
		prompt.WriteString("MATCHING RECORDS:\n")
		for _, r := range b.bundle.RetrievedRecords {
			prompt.WriteString(formatRecord(r))
		}
		prompt.WriteString("\n")
	}

	prompt.WriteString("</verified_context>\n\n")
}

func (b *GroundedBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	if b.bundle != nil && b.bundle.Grounded {
		prompt.WriteString("Answer the student's question using ONLY the verified context above.\n")
		prompt.WriteString("Every cutoff, rank or percentile you state must appear verbatim in the context.\n")
		prompt.WriteString("Be warm and encouraging, but never invent or round numbers.\n")
	} else {
		prompt.WriteString("No verified data matches this question. Tell the student honestly that you\n")
		prompt.WriteString("don't have cutoff data for this, and suggest they ask about a specific\n")
		prompt.WriteString("college, share their rank, or share their percentile. Do not state any\n")
		prompt.WriteString("cutoff numbers.\n")
	}
	prompt.WriteString("</task>\n\n")
}

func (b *GroundedBuilder) writeUserQuery(prompt *strings.Builder) {
	prompt.WriteString("<student_question>\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n</student_question>\n\n")
	prompt.WriteString("Answer:")
}

// BuildMessages prepends the system prompt and wraps the built prompt as the
// final user turn.
func (b *GroundedBuilder) BuildMessages(systemPrompt string, history []llm.Message) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: b.Build()})
	return messages
}

func formatRecord(r entity.CollegeRecord) string {
	var line strings.Builder
	line.WriteString("- ")
	line.WriteString(r.CollegeName)
	line.WriteString(" | ")
	line.WriteString(r.Branch)
	if r.CutoffRank != nil {
		line.WriteString(" | Cutoff Rank: ")
		line.WriteString(strconv.Itoa(*r.CutoffRank))
	}
	if r.CutoffPercentile != nil {
		line.WriteString(" | Cutoff Percentile: ")
		line.WriteString(formatFloat(*r.CutoffPercentile))
	}
	if r.Category != "" {
		line.WriteString(" | Category: ")
		line.WriteString(r.Category)
	}
	if r.Location != "" {
		line.WriteString(" | Location: ")
		line.WriteString(r.Location)
	}
	line.WriteString("\n")
	return line.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
