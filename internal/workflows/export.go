package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/envault/envault/internal/store"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// Store is the env store to export from.
	Store *store.Store

	// OutputPath is the path for the plaintext dotenv file.
	// If empty, the content is only returned, not written.
	OutputPath string
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// VarCount is the number of variables exported.
	VarCount int

	// OutputPath is the path written, empty if no file was written.
	OutputPath string

	// Content is the dotenv text.
	Content string
}

// Export decrypts the store and renders it as plaintext dotenv text,
// optionally writing it to a file.
//
// The output is the decrypted secret material. It is written with mode
// 0600 and it is the caller's responsibility not to commit it.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env, err := opts.Store.Load(store.LoadOptions{})
	if err != nil {
		return nil, err
	}

	// Render through the store codec so exported values keep their exact
	// bytes; a re-import of the output must be lossless.
	data, err := store.Encode(env)
	if err != nil {
		return nil, fmt.Errorf("failed to render dotenv output: %w", err)
	}
	content := string(data)

	result := &ExportResult{
		VarCount: len(env),
		Content:  content,
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, []byte(content), 0600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", opts.OutputPath, err)
		}
		result.OutputPath = opts.OutputPath
	}

	return result, nil
}
