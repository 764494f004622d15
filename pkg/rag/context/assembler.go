package context

import (
	"time"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/pkg/rag/intent"
	"cet-mentor-be/pkg/rag/predict"
	"cet-mentor-be/pkg/rag/search"
	"cet-mentor-be/pkg/rag/session"
	"cet-mentor-be/pkg/rag/suggest"
	"cet-mentor-be/pkg/store"
)

// ContextBundle is everything retrieved or computed for one turn. The
// generation step may only state facts present here; Grounded=false means the
// store had nothing relevant and the answer must say so instead of guessing.
type ContextBundle struct {
	RawQuery         string
	Kind             intent.Kind
	RetrievedRecords []entity.CollegeRecord
	Suggestion       *entity.SuggestionBucket
	Prediction       *entity.PredictionResult
	Grounded         bool
}

// Assembler classifies each raw input and routes it to the right computation:
// ranks to the suggester, percentiles to the predictor, free text to
// follow-up resolution or retrieval. It owns the margin and retrieval limit
// so callers stay ignorant of tuning.
type Assembler struct {
	retriever *search.Retriever
	suggester *suggest.Suggester
	predictor *predict.Predictor
	sessions  *session.Manager
	margin    int
	limit     int
	logger    logger.ILogger
}

func NewAssembler(
	retriever *search.Retriever,
	suggester *suggest.Suggester,
	predictor *predict.Predictor,
	sessions *session.Manager,
	margin int,
	limit int,
	log logger.ILogger,
) *Assembler {
	return &Assembler{
		retriever: retriever,
		suggester: suggester,
		predictor: predictor,
		sessions:  sessions,
		margin:    margin,
		limit:     limit,
		logger:    log,
	}
}

// Assemble builds the grounding bundle for one turn and updates the session.
// It returns an error only for invalid numeric input; an empty knowledge
// match is a valid, ungrounded bundle.
func (a *Assembler) Assemble(s *store.Session, rawQuery string, now time.Time) (*ContextBundle, error) {
	parsed := intent.Classify(rawQuery)

	switch parsed.Kind {
	case intent.KindRank:
		return a.assembleRank(s, parsed, now)
	case intent.KindPercentile:
		return a.assemblePercentile(s, parsed, now)
	default:
		return a.assembleFreeText(s, parsed, now)
	}
}

func (a *Assembler) assembleRank(s *store.Session, parsed *intent.Intent, now time.Time) (*ContextBundle, error) {
	bucket, err := a.suggester.Suggest(parsed.Rank, a.margin)
	if err != nil {
		return nil, err
	}

	a.sessions.RecordSuggestion(s, bucket, now)

	return &ContextBundle{
		RawQuery:   parsed.RawQuery,
		Kind:       parsed.Kind,
		Suggestion: bucket,
		Grounded:   len(bucket.Safe) > 0 || len(bucket.Ambitious) > 0,
	}, nil
}

func (a *Assembler) assemblePercentile(s *store.Session, parsed *intent.Intent, now time.Time) (*ContextBundle, error) {
	if parsed.College == "" {
		// A bare percentile is an implicit "where can I get in": convert to an
		// equivalent rank and suggest.
		rank := a.percentileToRank(parsed.Percentile)
		bucket, err := a.suggester.Suggest(rank, a.margin)
		if err != nil {
			return nil, err
		}
		bucket.UserPercentile = parsed.Percentile
		a.sessions.RecordSuggestion(s, bucket, now)
		return &ContextBundle{
			RawQuery:   parsed.RawQuery,
			Kind:       parsed.Kind,
			Suggestion: bucket,
			Grounded:   len(bucket.Safe) > 0 || len(bucket.Ambitious) > 0,
		}, nil
	}

	hits := a.retriever.Search(parsed.College, 1)
	if len(hits) == 0 {
		a.logger.Info("assembler", "No record for prediction target", map[string]interface{}{
			"college": parsed.College,
		})
		return &ContextBundle{
			RawQuery: parsed.RawQuery,
			Kind:     parsed.Kind,
			Grounded: false,
		}, nil
	}

	prediction, err := a.predictor.Predict(parsed.Percentile, hits[0])
	if err != nil {
		return nil, err
	}

	a.sessions.RecordPrediction(s, parsed.Percentile, hits[0], now)

	return &ContextBundle{
		RawQuery:         parsed.RawQuery,
		Kind:             parsed.Kind,
		RetrievedRecords: hits,
		Prediction:       prediction,
		Grounded:         true,
	}, nil
}

func (a *Assembler) assembleFreeText(s *store.Session, parsed *intent.Intent, now time.Time) (*ContextBundle, error) {
	hits := a.retriever.Search(parsed.RawQuery, a.limit)

	if bucket := a.sessions.ResolveFollowUp(s, parsed.RawQuery, now); bucket != nil {
		a.sessions.RecordRetrieval(s, hits, now)
		return &ContextBundle{
			RawQuery:         parsed.RawQuery,
			Kind:             parsed.Kind,
			RetrievedRecords: hits,
			Suggestion:       bucket,
			Grounded:         true,
		}, nil
	}

	a.sessions.RecordRetrieval(s, hits, now)

	return &ContextBundle{
		RawQuery:         parsed.RawQuery,
		Kind:             parsed.Kind,
		RetrievedRecords: hits,
		Grounded:         len(hits) > 0,
	}, nil
}

// percentileToRank is the inverse of the suggester's rank conversion, used
// when a user gives a percentile but asks a rank-shaped question.
func (a *Assembler) percentileToRank(pct float64) int {
	rank := a.suggester.PercentileToRank(pct)
	if rank < 1 {
		return 1
	}
	return rank
}
