package session

import (
	"strings"
	"time"

	"cet-mentor-be/internal/constant"
	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/internal/repository/contract"
	"cet-mentor-be/pkg/store"

	"github.com/google/uuid"
)

// Manager owns per-session conversational state: the last suggestion, the
// last rank or percentile, and the colleges last discussed. State is a cache
// for follow-up resolution, never a second source of cutoff truth.
type Manager struct {
	sessions contract.ISessionRepository
	logger   logger.ILogger
}

func NewManager(sessions contract.ISessionRepository, log logger.ILogger) *Manager {
	return &Manager{
		sessions: sessions,
		logger:   log,
	}
}

// LoadOrCreate returns the live session for id, or a fresh one when the id is
// empty, unknown or expired. Expired sessions are dropped, not resurrected.
func (m *Manager) LoadOrCreate(id string, now time.Time) *store.Session {
	if id != "" {
		if s, ok := m.sessions.Get(id); ok {
			if !s.Expired(now) {
				return s
			}
			m.sessions.Delete(id)
		}
	}

	return &store.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(constant.SessionInactivityWindow),
	}
}

// RecordSuggestion stores the latest suggestion and slides the expiry window.
func (m *Manager) RecordSuggestion(s *store.Session, bucket *entity.SuggestionBucket, now time.Time) {
	s.LastSuggestion = bucket
	rank := float64(bucket.UserRank)
	s.LastRankOrPercentile = &rank

	names := make([]string, 0, len(bucket.Safe)+len(bucket.Ambitious))
	seen := map[string]struct{}{}
	for _, r := range append(append([]entity.CollegeRecord{}, bucket.Safe...), bucket.Ambitious...) {
		if _, ok := seen[r.CollegeName]; ok {
			continue
		}
		seen[r.CollegeName] = struct{}{}
		names = append(names, r.CollegeName)
	}
	s.LastColleges = names

	m.save(s, now)
}

// RecordPrediction stores the percentile and college of the latest prediction.
func (m *Manager) RecordPrediction(s *store.Session, percentile float64, record entity.CollegeRecord, now time.Time) {
	s.LastRankOrPercentile = &percentile
	s.LastColleges = []string{record.CollegeName}
	m.save(s, now)
}

// RecordRetrieval remembers which colleges a free-text turn surfaced.
func (m *Manager) RecordRetrieval(s *store.Session, records []entity.CollegeRecord, now time.Time) {
	if len(records) == 0 {
		m.save(s, now)
		return
	}
	names := make([]string, 0, len(records))
	seen := map[string]struct{}{}
	for _, r := range records {
		if _, ok := seen[r.CollegeName]; ok {
			continue
		}
		seen[r.CollegeName] = struct{}{}
		names = append(names, r.CollegeName)
	}
	s.LastColleges = names
	m.save(s, now)
}

func (m *Manager) save(s *store.Session, now time.Time) {
	s.ExpiresAt = now.Add(constant.SessionInactivityWindow)
	m.sessions.Save(s)
}

// ResolveFollowUp answers queries like "what about the ambitious ones" or
// "only the Pune colleges" from the stored suggestion. Returns nil when there
// is nothing to follow up on: no live suggestion, or the query carries its
// own number and should be routed as a fresh request.
//
// When the query names colleges or branches present in the stored bucket, the
// bucket comes back filtered to those; otherwise it comes back whole.
func (m *Manager) ResolveFollowUp(s *store.Session, query string, now time.Time) *entity.SuggestionBucket {
	if s == nil || s.Expired(now) || s.LastSuggestion == nil {
		return nil
	}
	if strings.ContainsAny(query, "0123456789") {
		return nil
	}

	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return s.LastSuggestion
	}

	filtered := &entity.SuggestionBucket{
		Safe:           filterRecords(s.LastSuggestion.Safe, queryTokens),
		Ambitious:      filterRecords(s.LastSuggestion.Ambitious, queryTokens),
		UserRank:       s.LastSuggestion.UserRank,
		UserPercentile: s.LastSuggestion.UserPercentile,
	}
	if len(filtered.Safe) == 0 && len(filtered.Ambitious) == 0 {
		return s.LastSuggestion
	}
	return filtered
}

func filterRecords(records []entity.CollegeRecord, queryTokens map[string]struct{}) []entity.CollegeRecord {
	out := []entity.CollegeRecord{}
	for _, r := range records {
		if matchesAny(r.CollegeName, queryTokens) || matchesAny(r.Branch, queryTokens) {
			out = append(out, r)
		}
	}
	return out
}

// matchesAny reports whether any non-trivial token of s appears in the query.
// Single-character tokens are skipped to avoid matching articles.
func matchesAny(s string, queryTokens map[string]struct{}) bool {
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,()")
		if len(tok) < 2 {
			continue
		}
		if _, ok := queryTokens[tok]; ok {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,?!()")
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}
