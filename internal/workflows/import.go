package workflows

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"

	everrors "github.com/envault/envault/internal/errors"
	"github.com/envault/envault/internal/store"
)

// ImportMode represents the import strategy.
type ImportMode int

const (
	// ImportModeMerge keeps stored variables and lays imported ones on
	// top: new names are added, existing names replaced.
	ImportModeMerge ImportMode = iota
	// ImportModeReplace discards the stored map and keeps only the
	// imported variables.
	ImportModeReplace
)

func (m ImportMode) String() string {
	if m == ImportModeReplace {
		return "replace"
	}
	return "merge"
}

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Store is the env store to import into.
	Store *store.Store

	// Patterns are file paths or globs (doublestar ** supported)
	// naming plaintext dotenv files to read.
	Patterns []string

	// Mode is the import strategy (merge or replace).
	Mode ImportMode

	// DryRun previews the import without saving.
	DryRun bool
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	// Files are the dotenv files read, in processing order.
	Files []string

	// VarsAdded is the count of names new to the store.
	VarsAdded int

	// VarsReplaced is the count of stored names whose value changed.
	VarsReplaced int

	// TotalVars is the size of the resulting map.
	TotalVars int

	// DryRun indicates whether this was a dry-run.
	DryRun bool

	// Mode is the import mode used.
	Mode ImportMode
}

// Import reads plaintext dotenv files and folds them into the encrypted
// store. Later files win over earlier for the same name. In merge mode the
// store's existing map is the base; in replace mode the imported variables
// become the whole map. A store that does not exist yet is treated as
// empty and created on save.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := resolveEnvFiles(opts.Patterns)
	if err != nil {
		return nil, err
	}

	imported := make(map[string]string)
	for _, file := range files {
		vars, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		for name, value := range vars {
			imported[name] = value
		}
	}

	existing := make(map[string]string)
	exists, err := opts.Store.Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		existing, err = opts.Store.Load(store.LoadOptions{})
		if err != nil {
			return nil, err
		}
	}

	result := &ImportResult{
		Files:  files,
		DryRun: opts.DryRun,
		Mode:   opts.Mode,
	}

	var merged map[string]string
	switch opts.Mode {
	case ImportModeReplace:
		merged = imported
	default:
		merged = make(map[string]string, len(existing)+len(imported))
		for name, value := range existing {
			merged[name] = value
		}
		for name, value := range imported {
			merged[name] = value
		}
	}

	for name, value := range imported {
		old, ok := existing[name]
		switch {
		case !ok:
			result.VarsAdded++
		case old != value:
			result.VarsReplaced++
		}
	}
	result.TotalVars = len(merged)

	if opts.DryRun {
		return result, nil
	}

	if err := opts.Store.Save(merged, nil); err != nil {
		return nil, err
	}

	return result, nil
}

// resolveEnvFiles expands patterns into a deduplicated list of files.
// Literal paths must exist; glob patterns may match nothing individually,
// but matching nothing overall is ErrNoFilesFound.
func resolveEnvFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool) // Deduplicate.

	for _, pattern := range patterns {
		if strings.ContainsAny(pattern, "*?[") {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
			}
			// Stable order within a pattern; later patterns still win.
			sort.Strings(matches)
			for _, m := range matches {
				info, err := os.Stat(m)
				if err != nil || info.IsDir() {
					continue
				}
				if !seen[m] {
					seen[m] = true
					files = append(files, m)
				}
			}
			continue
		}

		info, err := os.Stat(pattern)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", everrors.ErrFileNotFound, pattern)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", pattern, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory, expected a dotenv file", pattern)
		}
		if !seen[pattern] {
			seen[pattern] = true
			files = append(files, pattern)
		}
	}

	if len(files) == 0 {
		return nil, everrors.ErrNoFilesFound
	}

	return files, nil
}
