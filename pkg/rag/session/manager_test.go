package session

import (
	"testing"
	"time"

	"cet-mentor-be/internal/constant"
	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/internal/repository/memory"
)

func intPtr(n int) *int { return &n }

func testBucket() *entity.SuggestionBucket {
	return &entity.SuggestionBucket{
		Safe: []entity.CollegeRecord{
			{CollegeName: "VJTI Mumbai", Branch: "Computer Engineering", CutoffRank: intPtr(800)},
			{CollegeName: "PICT Pune", Branch: "Information Technology", CutoffRank: intPtr(1500)},
		},
		Ambitious: []entity.CollegeRecord{
			{CollegeName: "COEP Pune", Branch: "Computer Engineering", CutoffRank: intPtr(550)},
		},
		UserRank:       600,
		UserPercentile: 99.83,
	}
}

func newTestManager() *Manager {
	return NewManager(memory.NewSessionRepository(), logger.NewNopLogger())
}

func TestLoadOrCreateRoundTrip(t *testing.T) {
	m := newTestManager()
	now := time.Now()

	created := m.LoadOrCreate("", now)
	if created.ID == "" {
		t.Fatal("expected a generated session id")
	}

	m.RecordSuggestion(created, testBucket(), now)

	loaded := m.LoadOrCreate(created.ID, now.Add(time.Minute))
	if loaded.ID != created.ID {
		t.Errorf("loaded id = %s, want %s", loaded.ID, created.ID)
	}
	if loaded.LastSuggestion == nil || loaded.LastSuggestion.UserRank != 600 {
		t.Errorf("loaded suggestion = %+v, want rank 600", loaded.LastSuggestion)
	}
}

func TestLoadOrCreateExpired(t *testing.T) {
	m := newTestManager()
	now := time.Now()

	sess := m.LoadOrCreate("", now)
	m.RecordSuggestion(sess, testBucket(), now)

	later := now.Add(constant.SessionInactivityWindow + time.Minute)
	fresh := m.LoadOrCreate(sess.ID, later)
	if fresh.ID == sess.ID {
		t.Error("expired session was resurrected")
	}
	if fresh.LastSuggestion != nil {
		t.Error("fresh session carries stale suggestion")
	}
}

func TestResolveFollowUpWholeBucket(t *testing.T) {
	m := newTestManager()
	now := time.Now()

	sess := m.LoadOrCreate("", now)
	m.RecordSuggestion(sess, testBucket(), now)

	got := m.ResolveFollowUp(sess, "which of these are good for placements", now.Add(time.Minute))
	if got == nil {
		t.Fatal("expected follow-up bucket")
	}
	if len(got.Safe) != 2 || len(got.Ambitious) != 1 {
		t.Errorf("bucket filtered unexpectedly: safe=%d ambitious=%d", len(got.Safe), len(got.Ambitious))
	}
}

func TestResolveFollowUpFiltered(t *testing.T) {
	m := newTestManager()
	now := time.Now()

	sess := m.LoadOrCreate("", now)
	m.RecordSuggestion(sess, testBucket(), now)

	got := m.ResolveFollowUp(sess, "tell me more about COEP", now.Add(time.Minute))
	if got == nil {
		t.Fatal("expected follow-up bucket")
	}
	if len(got.Ambitious) != 1 || got.Ambitious[0].CollegeName != "COEP Pune" {
		t.Errorf("ambitious = %+v, want only COEP Pune", got.Ambitious)
	}
	if len(got.Safe) != 0 {
		t.Errorf("safe = %+v, want empty after college filter", got.Safe)
	}
}

func TestResolveFollowUpNumericQuery(t *testing.T) {
	m := newTestManager()
	now := time.Now()

	sess := m.LoadOrCreate("", now)
	m.RecordSuggestion(sess, testBucket(), now)

	if got := m.ResolveFollowUp(sess, "what about rank 1200", now); got != nil {
		t.Error("query carrying a number must not resolve as follow-up")
	}
}

func TestResolveFollowUpNoContext(t *testing.T) {
	m := newTestManager()
	now := time.Now()

	empty := m.LoadOrCreate("", now)
	if got := m.ResolveFollowUp(empty, "what about these", now); got != nil {
		t.Error("session without suggestion must not resolve a follow-up")
	}
	if got := m.ResolveFollowUp(nil, "what about these", now); got != nil {
		t.Error("nil session must not resolve a follow-up")
	}

	withData := m.LoadOrCreate("", now)
	m.RecordSuggestion(withData, testBucket(), now)
	expired := now.Add(constant.SessionInactivityWindow + time.Minute)
	if got := m.ResolveFollowUp(withData, "what about these", expired); got != nil {
		t.Error("expired session must not resolve a follow-up")
	}
}
