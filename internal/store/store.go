package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/envault/envault/internal/configs"
	everrors "github.com/envault/envault/internal/errors"
)

// Store orchestrates the encrypted env file and its key file. It owns both
// file lifecycles exclusively; nothing else reads or writes them.
//
// The store is synchronous and takes no locks. Concurrent processes sharing
// the same paths race with last-writer-wins semantics, the same discipline
// as a plaintext .env file.
type Store struct {
	// FilePath is the encrypted env file. Empty means ./.env.
	FilePath string

	// KeyPath is the symmetric key file. Empty means the configs default
	// under the user config dir.
	KeyPath string

	// Environ is the process environment the store mirrors values into.
	// Tests replace it with a MapEnviron.
	Environ Environ
}

// New returns a store over filePath and keyPath. Either path may be empty
// to use the defaults resolved at call time.
func New(filePath, keyPath string) *Store {
	return &Store{
		FilePath: filePath,
		KeyPath:  keyPath,
		Environ:  OSEnviron(),
	}
}

// LoadOptions configures Load.
type LoadOptions struct {
	// Defaults are fallback values merged under the stored map. Stored
	// values always win over defaults for the same name. The map is never
	// mutated.
	Defaults map[string]string

	// SetEnv mirrors the result into the process environment: defaults
	// first, then stored values, both with override. Stored values
	// therefore clobber defaults, and defaults clobber unrelated
	// pre-existing entries of the same name.
	SetEnv bool
}

func (s *Store) paths() (string, string, error) {
	filePath := s.FilePath
	if filePath == "" {
		filePath = configs.DefaultEnvFile
	}

	keyPath := s.KeyPath
	if keyPath == "" {
		resolved, err := configs.DefaultKeyPath()
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve default key path: %w", err)
		}
		keyPath = resolved
	}

	return filePath, keyPath, nil
}

// Exists reports whether both the env file and the key file are present.
// This is the sole existence predicate; it does not validate that the env
// file decrypts. A failure to resolve the default paths (an unreadable
// config.toml) is an error, not absence, so callers can tell the two apart.
func (s *Store) Exists() (bool, error) {
	filePath, keyPath, err := s.paths()
	if err != nil {
		return false, err
	}
	return fileExists(filePath) && fileExists(keyPath), nil
}

// Load reads, decrypts, and decodes the env file, then merges it over
// opts.Defaults. Load never creates a key: a missing key file is
// ErrKeyNotFound, a missing env file is ErrEnvNotFound, and a present but
// undecryptable file is ErrDecryptFailed. The three are distinct so callers
// can tell "not initialized" apart from "tampered or wrong key".
func (s *Store) Load(opts LoadOptions) (map[string]string, error) {
	filePath, keyPath, err := s.paths()
	if err != nil {
		return nil, err
	}

	key, err := ReadKey(keyPath)
	if err != nil {
		return nil, err
	}

	blob, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", everrors.ErrEnvNotFound, filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env file at %s: %w", filePath, err)
	}

	plaintext, err := Decrypt(key, blob)
	if err != nil {
		return nil, err
	}

	stored, err := Decode(plaintext)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(opts.Defaults)+len(stored))
	for name, value := range opts.Defaults {
		merged[name] = value
	}
	for name, value := range stored {
		merged[name] = value
	}

	if opts.SetEnv {
		if err := Apply(s.Environ, opts.Defaults, true); err != nil {
			return nil, err
		}
		if err := Apply(s.Environ, stored, true); err != nil {
			return nil, err
		}
	}

	return merged, nil
}

// Save merges env over defaults, encodes and encrypts the result, and
// rewrites the env file in full. The key is created on first save if
// absent. The file is replaced atomically: on any error the prior file is
// left untouched.
func (s *Store) Save(env, defaults map[string]string) error {
	filePath, keyPath, err := s.paths()
	if err != nil {
		return err
	}

	merged := make(map[string]string, len(defaults)+len(env))
	for name, value := range defaults {
		merged[name] = value
	}
	for name, value := range env {
		merged[name] = value
	}

	key, err := EnsureKey(keyPath)
	if err != nil {
		return err
	}

	plaintext, err := Encode(merged)
	if err != nil {
		return err
	}

	blob, err := Encrypt(key, plaintext)
	if err != nil {
		return err
	}

	return writeFileAtomic(filePath, blob, 0600)
}

// Set loads the stored map, sets name to value in both the stored map and
// the process environment, and saves. The rest of the stored map is not
// applied to the environment.
func (s *Store) Set(name, value string) error {
	env, err := s.Load(LoadOptions{})
	if err != nil {
		return err
	}

	env[name] = value
	if err := s.Environ.Set(name, value); err != nil {
		return err
	}

	return s.Save(env, nil)
}

// Delete removes name from the stored map and saves, then unsets it in
// the process environment. With strict, deleting a name that is set in
// neither place returns ErrNameNotFound; without, it is an idempotent
// no-op save. The environment is only unset after a successful save, so a
// failed save leaves both the file and the environment as they were.
func (s *Store) Delete(name string, strict bool) error {
	env, err := s.Load(LoadOptions{})
	if err != nil {
		return err
	}

	_, inStore := env[name]
	_, inEnviron := s.Environ.Lookup(name)
	if strict && !inStore && !inEnviron {
		return fmt.Errorf("%w: %s", everrors.ErrNameNotFound, name)
	}

	delete(env, name)
	if err := s.Save(env, nil); err != nil {
		return err
	}

	return s.Environ.Unset(name)
}

// Update merges partial over the stored map and saves: new names are
// added, existing names replaced.
func (s *Store) Update(partial map[string]string) error {
	env, err := s.Load(LoadOptions{})
	if err != nil {
		return err
	}

	for name, value := range partial {
		env[name] = value
	}

	return s.Save(env, nil)
}

// Clear deletes the env file and the key file. Idempotent: clearing an
// absent store is not an error.
func (s *Store) Clear() error {
	filePath, keyPath, err := s.paths()
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove env file at %s: %w", filePath, err)
	}

	return DeleteKey(keyPath)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers see either the old file or the new one,
// never a partial write.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
