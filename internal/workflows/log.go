package workflows

import (
	"context"
	"fmt"

	"github.com/samanthaireland/stormkeys/internal/audit"
	"github.com/samanthaireland/stormkeys/internal/configs"
	kerrors "github.com/samanthaireland/stormkeys/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Root overrides project root discovery. If empty, the root is located
	// by walking up from the working directory.
	Root string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operation filters entries by operation name when non-empty.
	Operation string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the provisioning audit log.
//
// Returns ErrNoAuditLog if no runs have been recorded yet.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	root := opts.Root
	if root == "" {
		if err := configs.InitProjectSettings(); err != nil {
			return nil, err
		}
		root = configs.ProjectStormKeysSettings.ProjectPath
	}

	entries, err := audit.ReadEntries(root)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	if entries == nil {
		return nil, kerrors.ErrNoAuditLog
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	filtered := entries
	if opts.Operation != "" {
		filtered = nil
		for _, entry := range entries {
			if entry.Operation == opts.Operation {
				filtered = append(filtered, entry)
			}
		}
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}
