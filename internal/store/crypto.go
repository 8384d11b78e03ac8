package store

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	everrors "github.com/envault/envault/internal/errors"
)

// nonceSize is the secretbox nonce length in bytes.
const nonceSize = 24

// Encrypt seals plaintext with the symmetric key using NaCl secretbox.
// The random 24-byte nonce is prepended to the ciphertext, so the output
// is self-contained and safe to persist directly. Encryption is
// non-deterministic: sealing the same plaintext twice produces different
// blobs.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", everrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	var boxKey [KeySize]byte
	copy(boxKey[:], key)

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", everrors.ErrEncryptFailed, err)
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, &boxKey), nil
}

// Decrypt opens a blob produced by Encrypt. Returns ErrDecryptFailed if the
// blob was sealed under a different key, is truncated, or was tampered
// with. Authentication failure is never silently mapped to an empty
// payload; a corrupt store must surface as an error.
func Decrypt(key, blob []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", everrors.ErrInvalidKeyLength, KeySize, len(key))
	}
	if len(blob) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: blob too short", everrors.ErrDecryptFailed)
	}

	var boxKey [KeySize]byte
	copy(boxKey[:], key)

	var nonce [nonceSize]byte
	copy(nonce[:], blob[:nonceSize])

	plaintext, ok := secretbox.Open(nil, blob[nonceSize:], &nonce, &boxKey)
	if !ok {
		return nil, everrors.ErrDecryptFailed
	}

	return plaintext, nil
}
