// Package audit provides audit trail logging for envault operations.
//
// Every operation that touches the store (init, set, del, clear, import,
// export) is recorded so users can reconstruct what happened to their
// secrets and when. Variable values are never logged, only names.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) under
// the user config dir:
//
//	<user-config-dir>/envault/audit.jsonl
//
// Each entry contains a random UUID, a timestamp (RFC3339 with
// microseconds, UTC), the operation name, and operation-specific details.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. Operations should never
// fail just because audit logging failed.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
