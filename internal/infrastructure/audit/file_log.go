// Package audit appends operator actions to a plain-text log file.
package audit

import (
	"fmt"
	"os"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05"

// FileLog is an append-only audit sink. Each Record opens, appends one line,
// and closes the file, so a crash never loses more than the line in flight.
type FileLog struct {
	path string
	now  func() time.Time
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path, now: time.Now}
}

// Record appends one timestamped event line:
//
//	2025-01-02 15:04:05 | User: ana | Action: ADD_PERSON | Result: ID=7
//
// Write failures propagate to the caller; there is no retry policy.
func (l *FileLog) Record(username, action, result string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}

	line := fmt.Sprintf("%s | User: %s | Action: %s | Result: %s\n",
		l.now().Format(timestampFormat), username, action, result)
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("audit log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
