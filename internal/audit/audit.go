package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/samanthaireland/stormkeys/internal/configs"
	"github.com/samanthaireland/stormkeys/internal/utils"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS username performing the run.
	Operation string `json:"op"`   // Operation name (provision, verify).

	// Optional fields depending on operation.
	Force      bool     `json:"force,omitempty"`      // For provision.
	Generated  int      `json:"generated,omitempty"`  // Locations newly provisioned.
	Skipped    int      `json:"skipped,omitempty"`    // Locations left untouched.
	Failed     int      `json:"failed,omitempty"`     // Locations where generation failed.
	Incomplete []string `json:"incomplete,omitempty"` // Locations missing artifacts after the run.
	Complete   bool     `json:"complete"`             // Verifier result.
}

// Log appends an entry to the audit log under projectRoot.
// If logging fails it returns silently; operations must not fail just
// because audit logging failed.
func Log(projectRoot string, entry Entry) {
	if projectRoot == "" {
		return
	}

	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	// #nosec G306 -- audit log should be readable by team members.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
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

// NewEntry returns an entry for the given operation with the user field
// populated from the OS.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op}

	username, err := utils.GetUsername()
	if err != nil {
		return entry
	}
	entry.User = username

	return entry
}

// LogPath returns the audit log path for a project root.
func LogPath(projectRoot string) string {
	return filepath.Join(projectRoot, configs.ProjectConfigDirName, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log under projectRoot.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(projectRoot string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(projectRoot))
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
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
