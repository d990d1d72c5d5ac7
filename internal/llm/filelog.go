package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// FileLog is a RequestLog that appends records as JSON lines to a file.
type FileLog struct {
	mu   sync.Mutex
	path string
}

// NewFileLog creates a JSONL request log at path. The file is created on
// first append.
func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

func (l *FileLog) Append(_ context.Context, rec RequestRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, err := json.Marshal(struct {
		Timestamp time.Time `json:"t"`
		RequestRecord
	}{Timestamp: time.Now(), RequestRecord: rec})
	if err != nil {
		return fmt.Errorf("marshal request record: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open request log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write request log: %w", err)
	}
	return nil
}
