package cmd

import (
	"bytes"
	"io"
	"os"
)

// captureOutput redirects stdout while fn runs and returns what was
// written, so tests can assert on spinner final messages.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = originalStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	r.Close()

	return buf.String(), runErr
}

// executeCommand runs the root command with the given args and returns
// the captured stdout.
func executeCommand(args ...string) (string, error) {
	RootCmd.SetArgs(args)
	return captureOutput(func() error {
		return RootCmd.Execute()
	})
}
