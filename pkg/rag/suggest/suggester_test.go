package suggest

import (
	"errors"
	"math"
	"testing"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/pkg/rag"
)

type fakeKnowledge struct {
	records []entity.CollegeRecord
}

func (f *fakeKnowledge) AllRecords() []entity.CollegeRecord {
	return f.records
}

func intPtr(n int) *int { return &n }

func newTestSuggester() *Suggester {
	records := []entity.CollegeRecord{
		{CollegeName: "COEP Pune", Branch: "Computer Engineering", CutoffRank: intPtr(550)},
		{CollegeName: "VJTI Mumbai", Branch: "Computer Engineering", CutoffRank: intPtr(800)},
		{CollegeName: "PICT Pune", Branch: "Information Technology", CutoffRank: intPtr(1500)},
		{CollegeName: "WCE Sangli", Branch: "Mechanical Engineering", CutoffRank: intPtr(9000)},
		{CollegeName: "No Rank College", Branch: "Civil Engineering"},
	}
	return NewSuggester(&fakeKnowledge{records: records}, 350000, logger.NewNopLogger())
}

func TestSuggestBuckets(t *testing.T) {
	s := newTestSuggester()

	// Rank 600 with margin 50: COEP (550) sits inside the ambitious window,
	// everything with cutoff >= 600 is safe.
	bucket, err := s.Suggest(600, 50)
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}

	if len(bucket.Ambitious) != 1 || bucket.Ambitious[0].CollegeName != "COEP Pune" {
		t.Errorf("ambitious = %+v, want only COEP Pune", bucket.Ambitious)
	}
	if len(bucket.Safe) != 3 {
		t.Fatalf("safe count = %d, want 3", len(bucket.Safe))
	}
	// Ascending by cutoff rank.
	if bucket.Safe[0].CollegeName != "VJTI Mumbai" || bucket.Safe[2].CollegeName != "WCE Sangli" {
		t.Errorf("safe order wrong: %+v", bucket.Safe)
	}
}

func TestSuggestSafeOnly(t *testing.T) {
	s := newTestSuggester()

	bucket, err := s.Suggest(400, 50)
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}

	if len(bucket.Safe) != 4 {
		t.Errorf("safe count = %d, want 4 (all ranked records)", len(bucket.Safe))
	}
	if len(bucket.Ambitious) != 0 {
		t.Errorf("ambitious = %+v, want empty", bucket.Ambitious)
	}
}

func TestSuggestInvalidRank(t *testing.T) {
	s := newTestSuggester()

	for _, rank := range []int{0, -5} {
		if _, err := s.Suggest(rank, 50); !errors.Is(err, rag.ErrInvalidInput) {
			t.Errorf("Suggest(%d) error = %v, want ErrInvalidInput", rank, err)
		}
	}
	if _, err := s.Suggest(100, -1); !errors.Is(err, rag.ErrInvalidInput) {
		t.Errorf("negative margin error = %v, want ErrInvalidInput", err)
	}
}

func TestSuggestMonotonic(t *testing.T) {
	s := newTestSuggester()

	better, _ := s.Suggest(500, 0)
	worse, _ := s.Suggest(5000, 0)

	// A better rank never shrinks the safe list.
	if len(better.Safe) < len(worse.Safe) {
		t.Errorf("safe(%d)=%d < safe(%d)=%d; improving the rank shrank the safe list",
			500, len(better.Safe), 5000, len(worse.Safe))
	}
}

func TestRankToPercentile(t *testing.T) {
	s := newTestSuggester()

	got := s.RankToPercentile(3500)
	want := 99.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RankToPercentile(3500) = %v, want %v", got, want)
	}

	if got := s.RankToPercentile(0); got != 0 {
		t.Errorf("RankToPercentile(0) = %v, want 0", got)
	}
	if got := s.RankToPercentile(400000); got != 0 {
		t.Errorf("RankToPercentile beyond pool = %v, want clamp to 0", got)
	}
}

func TestPercentileToRank(t *testing.T) {
	s := newTestSuggester()

	if got := s.PercentileToRank(99.0); got != 3500 {
		t.Errorf("PercentileToRank(99.0) = %d, want 3500", got)
	}
	if got := s.PercentileToRank(100.0); got != 1 {
		t.Errorf("PercentileToRank(100.0) = %d, want clamp to 1", got)
	}
	if got := s.PercentileToRank(0); got != 0 {
		t.Errorf("PercentileToRank(0) = %d, want 0", got)
	}
}
