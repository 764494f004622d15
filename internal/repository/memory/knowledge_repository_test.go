package memory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cet-mentor-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mht_cet_data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidData(t *testing.T) {
	path := writeDataFile(t, `[
		{"college": "COEP Pune", "branch": "Computer Engineering", "cutoff_rank": 550, "cutoff_percentile": 99.2, "category": "OPEN", "location": "Pune"},
		{"college_name": "VJTI Mumbai", "branch_name": "Computer Engineering", "cutoff_rank": "800", "closing_percentile": "98.9", "category": "OPEN"},
		{"college": "PICT Pune", "branch": "Information Technology", "cutoff_rank": 1500, "category": "OPEN"}
	]`)

	repo := NewKnowledgeRepository(logger.NewNopLogger())
	require.NoError(t, repo.Load(path))
	require.True(t, repo.Loaded())

	records := repo.AllRecords()
	require.Len(t, records, 3)

	// Alternate field names and string numerics are normalized.
	assert.Equal(t, "VJTI Mumbai", records[1].CollegeName)
	require.NotNil(t, records[1].CutoffRank)
	assert.Equal(t, 800, *records[1].CutoffRank)
	require.NotNil(t, records[1].CutoffPercentile)
	assert.InDelta(t, 98.9, *records[1].CutoffPercentile, 1e-9)

	// A record may carry only a rank.
	assert.Nil(t, records[2].CutoffPercentile)
}

func TestLoadDedupsKeepingLast(t *testing.T) {
	path := writeDataFile(t, `[
		{"college": "COEP Pune", "branch": "Computer Engineering", "cutoff_rank": 550, "category": "OPEN"},
		{"college": "COEP Pune", "branch": "Computer Engineering", "cutoff_rank": 560, "category": "OPEN"}
	]`)

	repo := NewKnowledgeRepository(logger.NewNopLogger())
	require.NoError(t, repo.Load(path))

	records := repo.AllRecords()
	require.Len(t, records, 1)
	assert.Equal(t, 560, *records[0].CutoffRank)
}

func TestLoadSkipsGarbageRows(t *testing.T) {
	path := writeDataFile(t, `[
		{"college": "COEP Pune", "branch": "Computer Engineering", "cutoff_rank": 550, "category": "OPEN"},
		{"college": "", "branch": "Civil", "cutoff_rank": 100},
		{"college": "Broken College", "branch": "IT", "cutoff_rank": "not-a-number"},
		{"college": "No Data College", "branch": "IT"},
		{"college": "Bad Pct College", "branch": "IT", "cutoff_percentile": 250.0}
	]`)

	repo := NewKnowledgeRepository(logger.NewNopLogger())
	require.NoError(t, repo.Load(path))
	assert.Len(t, repo.AllRecords(), 1)
}

func TestLoadMissingFile(t *testing.T) {
	repo := NewKnowledgeRepository(logger.NewNopLogger())

	err := repo.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.False(t, repo.Loaded())
	assert.Nil(t, repo.AllRecords())
}

func TestLoadAllGarbageFails(t *testing.T) {
	path := writeDataFile(t, `[{"college": "X", "branch": "Y", "cutoff_rank": "garbage"}]`)

	repo := NewKnowledgeRepository(logger.NewNopLogger())
	err := repo.Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestFailedReloadKeepsPreviousSnapshot(t *testing.T) {
	good := writeDataFile(t, `[{"college": "COEP Pune", "branch": "Computer Engineering", "cutoff_rank": 550, "category": "OPEN"}]`)
	bad := writeDataFile(t, `this is not json`)

	repo := NewKnowledgeRepository(logger.NewNopLogger())
	require.NoError(t, repo.Load(good))
	require.Len(t, repo.AllRecords(), 1)

	require.Error(t, repo.Load(bad))

	// Readers keep seeing the last good snapshot.
	assert.True(t, repo.Loaded())
	assert.Len(t, repo.AllRecords(), 1)
	assert.Equal(t, "COEP Pune", repo.AllRecords()[0].CollegeName)
}

func TestByCollegeCaseInsensitive(t *testing.T) {
	path := writeDataFile(t, `[
		{"college": "COEP Pune", "branch": "Computer Engineering", "cutoff_rank": 550, "category": "OPEN"},
		{"college": "COEP Pune", "branch": "Mechanical Engineering", "cutoff_rank": 2100, "category": "OPEN"},
		{"college": "VJTI Mumbai", "branch": "Computer Engineering", "cutoff_rank": 800, "category": "OPEN"}
	]`)

	repo := NewKnowledgeRepository(logger.NewNopLogger())
	require.NoError(t, repo.Load(path))

	assert.Len(t, repo.ByCollege("coep pune"), 2)
	assert.Len(t, repo.ByCollege("  COEP PUNE "), 2)
	assert.Empty(t, repo.ByCollege("unknown"))
}
