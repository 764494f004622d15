package feedback

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"cet-mentor-be/internal/entity"
)

var csvHeader = []string{"timestamp", "type", "user_message", "bot_response", "correction"}

// CSVSink appends feedback entries to a local CSV file. Append-only: rows are
// never rewritten, and the header is emitted once when the file is created.
type CSVSink struct {
	path string
	mu   sync.Mutex
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append writes one feedback row. Safe for concurrent use.
func (s *CSVSink) Append(fb entity.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if info, err := os.Stat(s.path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open feedback log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("write feedback header: %w", err)
		}
	}

	row := []string{
		fb.CreatedAt.Format(time.RFC3339),
		fb.Type,
		fb.Message,
		fb.Response,
		fb.Correction,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write feedback row: %w", err)
	}

	w.Flush()
	return w.Error()
}
