// Package utils provides shared utility functions for the envault CLI.
//
// # I/O Utilities
//
// Functions for reading from stdin:
//   - ReadStdin: reads all data piped to standard input
//   - TrimTrailingNewline: strips the newline echo appends to piped values
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - IsTerminal: checks if stdin is a terminal
//   - ReadSecret: prompts for a value without echoing it
package utils
