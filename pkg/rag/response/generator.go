package response

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/pkg/llm"
	"cet-mentor-be/pkg/rag"
	ragcontext "cet-mentor-be/pkg/rag/context"
	"cet-mentor-be/pkg/rag/prompt"
)

// Generator turns a context bundle into the final answer. Every answer passes
// the numeric validator before it reaches the user; a rejected answer is
// replaced with a deterministic rendering of the bundle, so hallucinated
// numbers can never leak.
type Generator struct {
	provider     llm.LLMProvider
	validator    *Validator
	systemPrompt string
	logger       logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, systemPrompt string, log logger.ILogger) *Generator {
	return &Generator{
		provider:     provider,
		validator:    NewValidator(),
		systemPrompt: systemPrompt,
		logger:       log,
	}
}

// Generate produces a validated answer for one turn. A provider failure comes
// back wrapped as an upstream generation error; the bundle itself is never
// modified.
func (g *Generator) Generate(ctx context.Context, query string, bundle *ragcontext.ContextBundle, history []llm.Message) (string, error) {
	builder := prompt.NewGroundedBuilder(bundle, query)
	messages := builder.BuildMessages(g.systemPrompt, history)

	answer, err := g.provider.Chat(ctx, messages, llm.WithTemperature(0.3))
	if err != nil {
		g.logger.Error("generator", "LLM generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %v", rag.ErrUpstreamGeneration, err)
	}

	if !g.validator.Approve(answer, bundle) {
		g.logger.Warn("generator", "Answer rejected by numeric validation, using fallback", map[string]interface{}{
			"query": query,
		})
		return FallbackAnswer(bundle), nil
	}

	return answer, nil
}

// FallbackAnswer renders the bundle directly, with no model involvement.
// Used when generation produced unverifiable numbers.
func FallbackAnswer(bundle *ragcontext.ContextBundle) string {
	if bundle == nil || !bundle.Grounded {
		return "I don't have verified cutoff data for that yet. You can share your rank, your percentile, or ask about a specific college."
	}

	var b strings.Builder

	if s := bundle.Suggestion; s != nil {
		b.WriteString(fmt.Sprintf("Based on rank %d, here is what last year's cutoffs say.\n", s.UserRank))
		if len(s.Safe) > 0 {
			b.WriteString("\nSafe options:\n")
			writeRecords(&b, s.Safe)
		}
		if len(s.Ambitious) > 0 {
			b.WriteString("\nAmbitious options:\n")
			writeRecords(&b, s.Ambitious)
		}
		return b.String()
	}

	if p := bundle.Prediction; p != nil {
		b.WriteString(fmt.Sprintf("For %s (%s), your admission chance looks %s", p.Record.CollegeName, p.Record.Branch, p.Category))
		if p.Record.CutoffPercentile != nil {
			b.WriteString(fmt.Sprintf(" against last year's cutoff percentile of %s", strconv.FormatFloat(*p.Record.CutoffPercentile, 'f', 2, 64)))
		}
		b.WriteString(".\n")
		return b.String()
	}

	b.WriteString("Here is what I found in last year's cutoff data:\n")
	writeRecords(&b, bundle.RetrievedRecords)
	return b.String()
}

func writeRecords(b *strings.Builder, records []entity.CollegeRecord) {
	for _, r := range records {
		b.WriteString("- ")
		b.WriteString(r.CollegeName)
		b.WriteString(", ")
		b.WriteString(r.Branch)
		if r.CutoffRank != nil {
			b.WriteString(fmt.Sprintf(" (cutoff rank %d)", *r.CutoffRank))
		}
		b.WriteString("\n")
	}
}
