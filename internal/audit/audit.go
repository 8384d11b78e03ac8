package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/envault/envault/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"` // Random UUID per entry.
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	Name       string `json:"name,omitempty"`        // For set/del: variable name, never its value.
	File       string `json:"file,omitempty"`        // Env file path.
	Mode       string `json:"mode,omitempty"`        // For import (merge/replace).
	FilesCount int    `json:"files_count,omitempty"` // For import.
	VarsCount  int    `json:"vars_count,omitempty"`  // For import/export.
	OutputPath string `json:"output_path,omitempty"` // For export.
}

// Log appends an entry to the audit log.
// If logging fails, the entry is dropped silently. Operations should not
// fail just because audit logging failed.
func Log(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	// The log lives under the user config dir next to the key, so owner-only.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file, or empty string if the
// user config dir cannot be resolved.
func LogPath() string {
	settings, err := configs.Settings()
	if err != nil {
		return ""
	}
	return filepath.Join(settings.ConfigPath, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
