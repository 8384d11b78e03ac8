// Package errors provides typed error values for the envault application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Store errors: On-disk state issues (ErrKeyNotFound, ErrEnvNotFound)
//   - Crypto errors: Encryption/decryption failures (ErrDecryptFailed)
//   - Codec errors: Payload parsing failures (ErrMalformedEnv)
//   - Name errors: Variable lookup failures (ErrNameNotFound, ErrUnknownAlias)
//
// # Usage
//
// Return errors from internal packages:
//
//	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
//	    return nil, errors.ErrKeyNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	env, err := st.Load(store.LoadOptions{})
//	if errors.Is(err, everrors.ErrDecryptFailed) {
//	    // Wrong key or tampered file; tell the user, never fall back to empty.
//	}
//
// The distinction between ErrEnvNotFound/ErrKeyNotFound (store absent, a
// normal state) and ErrDecryptFailed (store present but unreadable) is
// load-bearing: callers must never conflate the two.
package errors
