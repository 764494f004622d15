package suggest

import (
	"fmt"
	"sort"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/pkg/rag"
)

// KnowledgeReader is the slice of the knowledge store the suggester needs.
type KnowledgeReader interface {
	AllRecords() []entity.CollegeRecord
}

// Suggester buckets colleges into safe and ambitious lists for a given rank.
// Pure computation over the current snapshot; it never mutates records.
type Suggester struct {
	knowledge       KnowledgeReader
	totalCandidates int
	logger          logger.ILogger
}

func NewSuggester(knowledge KnowledgeReader, totalCandidates int, log logger.ILogger) *Suggester {
	return &Suggester{
		knowledge:       knowledge,
		totalCandidates: totalCandidates,
		logger:          log,
	}
}

// Suggest partitions ranked records around the user's rank:
//
//	safe:      cutoffRank >= rank (a worse or equal rank got in last year)
//	ambitious: rank-margin <= cutoffRank < rank
//
// Records without a cutoff rank are excluded. Both buckets come back sorted
// by cutoff rank ascending, ties alphabetical by college then branch.
func (s *Suggester) Suggest(rank, margin int) (*entity.SuggestionBucket, error) {
	if rank <= 0 {
		return nil, fmt.Errorf("%w: rank must be a positive integer, got %d", rag.ErrInvalidInput, rank)
	}
	if margin < 0 {
		return nil, fmt.Errorf("%w: margin must be non-negative, got %d", rag.ErrInvalidInput, margin)
	}

	bucket := &entity.SuggestionBucket{
		Safe:           []entity.CollegeRecord{},
		Ambitious:      []entity.CollegeRecord{},
		UserRank:       rank,
		UserPercentile: s.RankToPercentile(rank),
	}

	for _, record := range s.knowledge.AllRecords() {
		if record.CutoffRank == nil {
			continue
		}
		cutoff := *record.CutoffRank
		switch {
		case cutoff >= rank:
			bucket.Safe = append(bucket.Safe, record)
		case cutoff >= rank-margin:
			bucket.Ambitious = append(bucket.Ambitious, record)
		}
	}

	sortByCutoff(bucket.Safe)
	sortByCutoff(bucket.Ambitious)

	s.logger.Debug("suggester", "Suggestion computed", map[string]interface{}{
		"rank":      rank,
		"margin":    margin,
		"safe":      len(bucket.Safe),
		"ambitious": len(bucket.Ambitious),
	})

	return bucket, nil
}

// RankToPercentile converts a rank to an approximate percentile assuming a
// fixed candidate pool. Ranks beyond the pool clamp to 0.
func (s *Suggester) RankToPercentile(rank int) float64 {
	if rank <= 0 || s.totalCandidates <= 0 {
		return 0
	}
	pct := (1 - float64(rank)/float64(s.totalCandidates)) * 100
	if pct < 0 {
		return 0
	}
	return pct
}

// PercentileToRank is the inverse conversion, rounded to the nearest rank
// and clamped to at least 1.
func (s *Suggester) PercentileToRank(pct float64) int {
	if pct <= 0 || pct > 100 || s.totalCandidates <= 0 {
		return 0
	}
	rank := int((1-pct/100)*float64(s.totalCandidates) + 0.5)
	if rank < 1 {
		return 1
	}
	return rank
}

func sortByCutoff(records []entity.CollegeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := *records[i].CutoffRank, *records[j].CutoffRank
		if ri != rj {
			return ri < rj
		}
		if records[i].CollegeName != records[j].CollegeName {
			return records[i].CollegeName < records[j].CollegeName
		}
		return records[i].Branch < records[j].Branch
	})
}
