package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
)

// ErrDataUnavailable means the knowledge base file is missing, unreadable, or
// contained zero valid records. Fatal at startup, recoverable via reload.
var ErrDataUnavailable = errors.New("knowledge base unavailable")

// KnowledgeRepository holds the college cutoff dataset as an immutable
// snapshot. Reload builds a full replacement snapshot and swaps it in
// atomically, so concurrent readers never observe a partial load; a failed
// reload leaves the prior snapshot in place.
type KnowledgeRepository struct {
	snapshot atomic.Pointer[knowledgeSnapshot]
	logger   logger.ILogger
}

type knowledgeSnapshot struct {
	records   []entity.CollegeRecord
	byCollege map[string][]entity.CollegeRecord
}

func NewKnowledgeRepository(log logger.ILogger) *KnowledgeRepository {
	return &KnowledgeRepository{logger: log}
}

// Load reads, validates, and dedups the JSON knowledge base at path, then
// swaps the result in as the active snapshot. Safe to call while readers are
// active.
func (r *KnowledgeRepository) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrDataUnavailable, path, err)
	}

	var rows []rawCollegeRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrDataUnavailable, path, err)
	}

	// Dedup by (college, branch, category), keeping the last-scraped value.
	deduped := make(map[string]entity.CollegeRecord)
	order := make([]string, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		rec, ok := row.toRecord()
		if !ok {
			skipped++
			continue
		}
		key := rec.Key()
		if _, seen := deduped[key]; !seen {
			order = append(order, key)
		}
		deduped[key] = rec
	}

	if len(deduped) == 0 {
		return fmt.Errorf("%w: %s yielded no valid records (%d skipped)", ErrDataUnavailable, path, skipped)
	}

	snap := &knowledgeSnapshot{
		records:   make([]entity.CollegeRecord, 0, len(deduped)),
		byCollege: make(map[string][]entity.CollegeRecord),
	}
	for _, key := range order {
		rec := deduped[key]
		snap.records = append(snap.records, rec)
		nameKey := strings.ToLower(rec.CollegeName)
		snap.byCollege[nameKey] = append(snap.byCollege[nameKey], rec)
	}

	r.snapshot.Store(snap)

	if r.logger != nil {
		r.logger.Info("knowledge", "Knowledge base loaded", map[string]interface{}{
			"path":    path,
			"records": len(snap.records),
			"skipped": skipped,
		})
	}
	return nil
}

// Loaded reports whether a snapshot is available.
func (r *KnowledgeRepository) Loaded() bool {
	return r.snapshot.Load() != nil
}

// AllRecords returns the current snapshot's records. Callers must not mutate
// the returned slice.
func (r *KnowledgeRepository) AllRecords() []entity.CollegeRecord {
	snap := r.snapshot.Load()
	if snap == nil {
		return nil
	}
	return snap.records
}

// ByCollege returns all records for a college by case-insensitive exact name.
func (r *KnowledgeRepository) ByCollege(name string) []entity.CollegeRecord {
	snap := r.snapshot.Load()
	if snap == nil {
		return nil
	}
	return snap.byCollege[strings.ToLower(strings.TrimSpace(name))]
}

// rawCollegeRow tolerates both the scraper's raw column names and the
// normalized ones, and numeric fields arriving as strings.
type rawCollegeRow struct {
	College           string      `json:"college"`
	CollegeName       string      `json:"college_name"`
	Branch            string      `json:"branch"`
	BranchName        string      `json:"branch_name"`
	CutoffRank        interface{} `json:"cutoff_rank"`
	CutoffPercentile  interface{} `json:"cutoff_percentile"`
	ClosingPercentile interface{} `json:"closing_percentile"`
	Category          string      `json:"category"`
	Location          string      `json:"location"`
}

// toRecord validates and coerces one row. ok is false when the row must be
// skipped: empty identity, numeric garbage, or no cutoff data at all.
func (row rawCollegeRow) toRecord() (entity.CollegeRecord, bool) {
	rec := entity.CollegeRecord{
		CollegeName: firstNonEmpty(row.College, row.CollegeName),
		Branch:      firstNonEmpty(row.Branch, row.BranchName),
		Category:    row.Category,
		Location:    row.Location,
	}
	if rec.CollegeName == "" || rec.Branch == "" {
		return entity.CollegeRecord{}, false
	}

	rank, ok := coerceInt(row.CutoffRank)
	if !ok {
		return entity.CollegeRecord{}, false
	}
	pct, ok := coerceFloat(firstNonNil(row.CutoffPercentile, row.ClosingPercentile))
	if !ok {
		return entity.CollegeRecord{}, false
	}
	if pct != nil && (*pct <= 0 || *pct > 100) {
		return entity.CollegeRecord{}, false
	}
	if rank == nil && pct == nil {
		return entity.CollegeRecord{}, false
	}

	rec.CutoffRank = rank
	rec.CutoffPercentile = pct
	return rec, true
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstNonNil(a, b interface{}) interface{} {
	if a != nil {
		return a
	}
	return b
}

// coerceInt maps nil to (nil, true); numeric garbage yields ok=false.
func coerceInt(v interface{}) (*int, bool) {
	f, ok := coerceFloat(v)
	if !ok {
		return nil, false
	}
	if f == nil {
		return nil, true
	}
	i := int(*f)
	return &i, true
}

func coerceFloat(v interface{}) (*float64, bool) {
	switch val := v.(type) {
	case nil:
		return nil, true
	case float64:
		return &val, true
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, false
		}
		return &f, true
	default:
		return nil, false
	}
}
