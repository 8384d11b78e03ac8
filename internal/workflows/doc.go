// Package workflows implements multi-step operations on the env store
// that sit between the CLI layer and the store itself.
//
// Each workflow takes a context and an Options struct and returns a
// Result struct describing what happened, so the CLI layer owns all
// user-facing output and the workflow stays testable.
//
//   - Export: decrypt the store into plaintext dotenv text
//   - Import: fold plaintext dotenv files into the store (merge/replace)
package workflows
