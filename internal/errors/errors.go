package errors

import "errors"

// Store state errors indicate issues with the on-disk env store.
var (
	// ErrKeyNotFound indicates the key file is missing from disk.
	ErrKeyNotFound = errors.New("encryption key file not found")

	// ErrEnvNotFound indicates the encrypted env file is missing from disk.
	ErrEnvNotFound = errors.New("encrypted env file not found")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrEncryptFailed indicates the env payload could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt env payload")

	// ErrDecryptFailed indicates authentication or decryption of the env
	// file failed: wrong key, or a corrupted/tampered ciphertext.
	ErrDecryptFailed = errors.New("failed to decrypt env file")

	// ErrInvalidKeyLength indicates the symmetric key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")
)

// Codec errors indicate the decrypted payload is not a valid env mapping.
var (
	// ErrMalformedEnv indicates decrypted bytes do not parse as dotenv pairs.
	ErrMalformedEnv = errors.New("malformed env payload")
)

// Name errors indicate issues with individual variable lookups.
var (
	// ErrNameNotFound indicates the requested variable is not set.
	ErrNameNotFound = errors.New("environment variable not found")

	// ErrUnknownAlias indicates the alias is not in the handle's table.
	ErrUnknownAlias = errors.New("unknown variable alias")
)

// File errors indicate issues with file discovery during import.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")
)
