package context

import (
	"testing"
	"time"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/internal/repository/memory"
	"cet-mentor-be/pkg/rag/intent"
	"cet-mentor-be/pkg/rag/predict"
	"cet-mentor-be/pkg/rag/search"
	"cet-mentor-be/pkg/rag/session"
	"cet-mentor-be/pkg/rag/suggest"
	"cet-mentor-be/pkg/store"
)

type fakeKnowledge struct {
	records []entity.CollegeRecord
}

func (f *fakeKnowledge) AllRecords() []entity.CollegeRecord {
	return f.records
}

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func newTestAssembler() (*Assembler, *session.Manager) {
	knowledge := &fakeKnowledge{records: []entity.CollegeRecord{
		{CollegeName: "COEP Pune", Branch: "Computer Engineering", CutoffRank: intPtr(550), CutoffPercentile: floatPtr(99.2), Location: "Pune"},
		{CollegeName: "VJTI Mumbai", Branch: "Computer Engineering", CutoffRank: intPtr(800), CutoffPercentile: floatPtr(98.9), Location: "Mumbai"},
		{CollegeName: "PICT Pune", Branch: "Information Technology", CutoffRank: intPtr(1500), CutoffPercentile: floatPtr(98.1), Location: "Pune"},
	}}

	nop := logger.NewNopLogger()
	retriever := search.NewRetriever(knowledge, nop)
	suggester := suggest.NewSuggester(knowledge, 350000, nop)
	sessions := session.NewManager(memory.NewSessionRepository(), nop)
	assembler := NewAssembler(retriever, suggester, predict.NewPredictor(), sessions, 50, 5, nop)
	return assembler, sessions
}

func newSession(sessions *session.Manager) *store.Session {
	return sessions.LoadOrCreate("", time.Now())
}

func TestAssembleRankSuggestion(t *testing.T) {
	a, sessions := newTestAssembler()
	sess := newSession(sessions)
	now := time.Now()

	bundle, err := a.Assemble(sess, "600", now)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if bundle.Kind != intent.KindRank {
		t.Errorf("kind = %v, want rank", bundle.Kind)
	}
	if !bundle.Grounded {
		t.Error("rank bundle with matches should be grounded")
	}
	if bundle.Suggestion == nil {
		t.Fatal("expected suggestion")
	}
	// COEP's cutoff of 550 is within the margin of 50 below rank 600.
	if len(bundle.Suggestion.Ambitious) != 1 || bundle.Suggestion.Ambitious[0].CollegeName != "COEP Pune" {
		t.Errorf("ambitious = %+v, want only COEP Pune", bundle.Suggestion.Ambitious)
	}
	if len(bundle.Suggestion.Safe) != 2 {
		t.Errorf("safe count = %d, want 2", len(bundle.Suggestion.Safe))
	}
	if sess.LastSuggestion == nil {
		t.Error("session should remember the suggestion")
	}
}

func TestAssembleRankAllSafe(t *testing.T) {
	a, sessions := newTestAssembler()
	sess := newSession(sessions)

	bundle, err := a.Assemble(sess, "400", time.Now())
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if len(bundle.Suggestion.Safe) != 3 || len(bundle.Suggestion.Ambitious) != 0 {
		t.Errorf("safe=%d ambitious=%d, want 3/0", len(bundle.Suggestion.Safe), len(bundle.Suggestion.Ambitious))
	}
}

func TestAssemblePercentileWithCollege(t *testing.T) {
	a, sessions := newTestAssembler()
	sess := newSession(sessions)

	bundle, err := a.Assemble(sess, "97.0 COEP Pune", time.Now())
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if bundle.Kind != intent.KindPercentile {
		t.Errorf("kind = %v, want percentile", bundle.Kind)
	}
	if bundle.Prediction == nil {
		t.Fatal("expected prediction")
	}
	// 97.0 against a 99.2 cutoff is a delta of -2.2.
	if bundle.Prediction.Category != entity.ChanceLow {
		t.Errorf("category = %v, want Low", bundle.Prediction.Category)
	}
	if !bundle.Grounded {
		t.Error("prediction bundle should be grounded")
	}
}

func TestAssemblePercentileUnknownCollege(t *testing.T) {
	a, sessions := newTestAssembler()
	sess := newSession(sessions)

	bundle, err := a.Assemble(sess, "97.0 Hogwarts", time.Now())
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if bundle.Grounded {
		t.Error("unknown college must produce an ungrounded bundle")
	}
	if bundle.Prediction != nil {
		t.Error("no prediction expected for unknown college")
	}
}

func TestAssembleFreeTextRetrieval(t *testing.T) {
	a, sessions := newTestAssembler()
	sess := newSession(sessions)

	bundle, err := a.Assemble(sess, "What about COEP computer engineering", time.Now())
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if bundle.Kind != intent.KindFreeText {
		t.Errorf("kind = %v, want free text", bundle.Kind)
	}
	if len(bundle.RetrievedRecords) == 0 {
		t.Fatal("expected retrieved records")
	}
	if bundle.RetrievedRecords[0].CollegeName != "COEP Pune" {
		t.Errorf("top record = %s, want COEP Pune", bundle.RetrievedRecords[0].CollegeName)
	}
	if !bundle.Grounded {
		t.Error("bundle with retrieved records should be grounded")
	}
}

func TestAssembleFreeTextNoMatch(t *testing.T) {
	a, sessions := newTestAssembler()
	sess := newSession(sessions)

	bundle, err := a.Assemble(sess, "best medical college", time.Now())
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if bundle.Grounded {
		t.Error("no matches means the bundle must be ungrounded")
	}
}

func TestAssembleFollowUpAfterSuggestion(t *testing.T) {
	a, sessions := newTestAssembler()
	sess := newSession(sessions)
	now := time.Now()

	if _, err := a.Assemble(sess, "600", now); err != nil {
		t.Fatalf("seed suggestion failed: %v", err)
	}

	bundle, err := a.Assemble(sess, "which of these have good hostels", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if bundle.Suggestion == nil {
		t.Fatal("expected the prior suggestion as follow-up context")
	}
	if bundle.Suggestion.UserRank != 600 {
		t.Errorf("follow-up rank = %d, want 600", bundle.Suggestion.UserRank)
	}
	if !bundle.Grounded {
		t.Error("follow-up bundle should be grounded")
	}
}

func TestAssembleInvalidPercentile(t *testing.T) {
	a, sessions := newTestAssembler()
	sess := newSession(sessions)

	// "0" parses as an integer but is not a valid rank; it routes to free
	// text, which must not error.
	bundle, err := a.Assemble(sess, "0", time.Now())
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if bundle.Kind != intent.KindFreeText {
		t.Errorf("kind = %v, want free text", bundle.Kind)
	}
}
