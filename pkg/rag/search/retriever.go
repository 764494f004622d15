package search

import (
	"sort"
	"strings"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
)

// KnowledgeReader is the slice of the knowledge store the retriever needs.
type KnowledgeReader interface {
	AllRecords() []entity.CollegeRecord
}

// exactNameBonus outranks any achievable token-overlap score, so a query that
// spells out a full college name always beats partial matches.
const exactNameBonus = 1000

// Retriever scores records against free-text queries by token-set overlap
// over college name, branch and location. Deterministic: equal queries over
// an unchanged snapshot return identical slices.
type Retriever struct {
	knowledge KnowledgeReader
	logger    logger.ILogger
}

func NewRetriever(knowledge KnowledgeReader, log logger.ILogger) *Retriever {
	return &Retriever{
		knowledge: knowledge,
		logger:    log,
	}
}

type scoredRecord struct {
	record entity.CollegeRecord
	score  int
}

// Search returns up to limit records relevant to the query, best first.
// Ties break toward the lower (better) cutoff rank, then alphabetically.
// A query matching nothing returns an empty slice, never an error.
func (r *Retriever) Search(query string, limit int) []entity.CollegeRecord {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || limit <= 0 {
		return []entity.CollegeRecord{}
	}

	normalizedQuery := strings.Join(queryTokens, " ")

	var scored []scoredRecord
	for _, record := range r.knowledge.AllRecords() {
		score := overlap(queryTokens, tokenize(record.CollegeName)) +
			overlap(queryTokens, tokenize(record.Branch)) +
			overlap(queryTokens, tokenize(record.Location))
		if score == 0 {
			continue
		}
		if fullName := strings.Join(tokenize(record.CollegeName), " "); fullName != "" &&
			strings.Contains(normalizedQuery, fullName) {
			score += exactNameBonus
		}
		scored = append(scored, scoredRecord{record: record, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		ri, rj := cutoffOrWorst(scored[i].record), cutoffOrWorst(scored[j].record)
		if ri != rj {
			return ri < rj
		}
		if scored[i].record.CollegeName != scored[j].record.CollegeName {
			return scored[i].record.CollegeName < scored[j].record.CollegeName
		}
		return scored[i].record.Branch < scored[j].record.Branch
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	results := make([]entity.CollegeRecord, 0, len(scored))
	for _, s := range scored {
		results = append(results, s.record)
	}

	r.logger.Debug("retriever", "Search completed", map[string]interface{}{
		"query":   query,
		"matches": len(results),
	})

	return results
}

// cutoffOrWorst treats records without a rank as worse than any ranked record.
func cutoffOrWorst(record entity.CollegeRecord) int {
	if record.CutoffRank == nil {
		return int(^uint(0) >> 1)
	}
	return *record.CutoffRank
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	lowered := strings.ToLower(s)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

// overlap counts how many query tokens appear in the candidate token set.
func overlap(queryTokens, candidateTokens []string) int {
	if len(candidateTokens) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(candidateTokens))
	for _, t := range candidateTokens {
		set[t] = struct{}{}
	}
	count := 0
	for _, t := range queryTokens {
		if _, ok := set[t]; ok {
			count++
		}
	}
	return count
}
