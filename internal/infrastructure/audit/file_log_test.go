package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local)
}

func TestFileLog_Record_LineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	log := NewFileLog(path)
	log.now = fixedClock

	if err := log.Record("ana", "LOGIN", "OK"); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "2025-01-02 15:04:05 | User: ana | Action: LOGIN | Result: OK\n"
	if string(data) != want {
		t.Fatalf("log line = %q, want %q", string(data), want)
	}
}

func TestFileLog_Record_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	log := NewFileLog(path)
	log.now = fixedClock

	if err := log.Record("ana", "ADD_PERSON", "ID=7"); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := log.Record("ana", "SAVE", "OK"); err != nil {
		t.Fatalf("second record: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "2025-01-02 15:04:05 | User: ana | Action: ADD_PERSON | Result: ID=7\n" +
		"2025-01-02 15:04:05 | User: ana | Action: SAVE | Result: OK\n"
	if string(data) != want {
		t.Fatalf("log contents = %q, want %q", string(data), want)
	}
}

func TestFileLog_Record_UnwritablePath(t *testing.T) {
	// A directory path cannot be opened for append; the failure must surface.
	log := NewFileLog(t.TempDir())

	if err := log.Record("ana", "LOGIN", "OK"); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}
