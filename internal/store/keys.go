package store

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	everrors "github.com/envault/envault/internal/errors"
)

// KeySize is the symmetric key length in bytes.
const KeySize = 32

// CreateKey generates a new random symmetric key.
func CreateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	return key, nil
}

// EnsureKey returns the key at keyPath, creating one if the file does not
// exist. An existing file is returned byte-for-byte with no validation; a
// key, once written, is never regenerated in place. New key files are
// created with mode 0700 so only the owner can read them.
func EnsureKey(keyPath string) ([]byte, error) {
	key, err := os.ReadFile(keyPath)
	if err == nil {
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read key file at %s: %w", keyPath, err)
	}

	key, err = CreateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	// #nosec G306 -- 0700 is intentional: owner-only, matching the store's
	// permission contract for the key file.
	if err := os.WriteFile(keyPath, key, 0700); err != nil {
		return nil, fmt.Errorf("failed to write key file at %s: %w", keyPath, err)
	}

	return key, nil
}

// ReadKey reads the key at keyPath. Returns ErrKeyNotFound if the file
// does not exist.
func ReadKey(keyPath string) ([]byte, error) {
	key, err := os.ReadFile(keyPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", everrors.ErrKeyNotFound, keyPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key file at %s: %w", keyPath, err)
	}

	return key, nil
}

// DeleteKey removes the key file if present. Removing an absent key is not
// an error.
func DeleteKey(keyPath string) error {
	err := os.Remove(keyPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key file at %s: %w", keyPath, err)
	}
	return nil
}
