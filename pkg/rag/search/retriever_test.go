package search

import (
	"testing"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
)

type fakeKnowledge struct {
	records []entity.CollegeRecord
}

func (f *fakeKnowledge) AllRecords() []entity.CollegeRecord {
	return f.records
}

func intPtr(n int) *int { return &n }

func testRecords() []entity.CollegeRecord {
	return []entity.CollegeRecord{
		{CollegeName: "COEP Pune", Branch: "Computer Engineering", CutoffRank: intPtr(320), Location: "Pune"},
		{CollegeName: "COEP Pune", Branch: "Mechanical Engineering", CutoffRank: intPtr(2100), Location: "Pune"},
		{CollegeName: "VJTI Mumbai", Branch: "Computer Engineering", CutoffRank: intPtr(540), Location: "Mumbai"},
		{CollegeName: "PICT Pune", Branch: "Information Technology", CutoffRank: intPtr(900), Location: "Pune"},
		{CollegeName: "SPIT Mumbai", Branch: "Computer Engineering", CutoffRank: intPtr(1200), Location: "Mumbai"},
	}
}

func newTestRetriever() *Retriever {
	return NewRetriever(&fakeKnowledge{records: testRecords()}, logger.NewNopLogger())
}

func TestSearchExactNameWins(t *testing.T) {
	r := newTestRetriever()

	got := r.Search("COEP Pune computer engineering", 3)
	if len(got) == 0 {
		t.Fatal("expected results")
	}
	if got[0].CollegeName != "COEP Pune" || got[0].Branch != "Computer Engineering" {
		t.Errorf("top result = %s/%s, want COEP Pune/Computer Engineering", got[0].CollegeName, got[0].Branch)
	}
}

func TestSearchPartialOverlap(t *testing.T) {
	r := newTestRetriever()

	got := r.Search("computer engineering in Mumbai", 10)
	if len(got) == 0 {
		t.Fatal("expected results")
	}
	// Both Mumbai computer engineering records score the same; the tie
	// resolves by lower cutoff rank.
	if got[0].CollegeName != "VJTI Mumbai" {
		t.Errorf("top result = %s, want VJTI Mumbai", got[0].CollegeName)
	}
	if got[1].CollegeName != "SPIT Mumbai" {
		t.Errorf("second result = %s, want SPIT Mumbai", got[1].CollegeName)
	}
}

func TestSearchLimit(t *testing.T) {
	r := newTestRetriever()

	got := r.Search("engineering Pune Mumbai computer", 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestSearchNoMatch(t *testing.T) {
	r := newTestRetriever()

	got := r.Search("medical colleges in Nagpur", 5)
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
	if got == nil {
		t.Fatal("want empty slice, not nil")
	}
}

func TestSearchDeterministic(t *testing.T) {
	r := newTestRetriever()

	first := r.Search("computer engineering", 5)
	second := r.Search("computer engineering", 5)

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key() != second[i].Key() {
			t.Errorf("result %d differs between identical queries", i)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	r := newTestRetriever()

	if got := r.Search("   ", 5); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
	if got := r.Search("COEP", 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0 for zero limit", len(got))
	}
}
