package store

import (
	"time"

	"cet-mentor-be/internal/entity"
)

// Session is the short-lived conversational state for one chat session. It
// remembers the last suggestion/prediction turn so follow-up questions
// ("what about computer science there?") can be resolved without re-asking
// for the rank. Storage and TTL mechanics belong to the repository that holds
// it; expiry is still recorded here so readers can reject stale state that a
// lazy store has not purged yet.
type Session struct {
	ID                   string                   `json:"id"`
	LastSuggestion       *entity.SuggestionBucket `json:"last_suggestion"`
	LastRankOrPercentile *float64                 `json:"last_rank_or_percentile"`
	LastColleges         []string                 `json:"last_colleges"`
	CreatedAt            time.Time                `json:"created_at"`
	ExpiresAt            time.Time                `json:"expires_at"`
}

// Expired reports whether the inactivity window has passed. An expired
// session behaves identically to an absent one.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
