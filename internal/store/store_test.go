package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	everrors "github.com/envault/envault/internal/errors"
)

// newTestStore returns a store over paths in a fresh temp dir, wired to an
// isolated in-memory environment.
func newTestStore(t *testing.T) (*Store, *MapEnviron) {
	t.Helper()
	tmpDir := t.TempDir()

	environ := NewMapEnviron()
	s := New(filepath.Join(tmpDir, ".env"), filepath.Join(tmpDir, ".env.key"))
	s.Environ = environ
	return s, environ
}

func storeExists(t *testing.T, s *Store) bool {
	t.Helper()
	exists, err := s.Exists()
	if err != nil {
		t.Fatalf("Expected no error from Exists, got: %v", err)
	}
	return exists
}

func TestStore_FullLifecycle(t *testing.T) {
	s, _ := newTestStore(t)

	if storeExists(t, s) {
		t.Fatalf("Expected store to not exist in fresh directory")
	}

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}
	if !storeExists(t, s) {
		t.Fatalf("Expected store to exist after save")
	}

	env, err := s.Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	if !reflect.DeepEqual(env, map[string]string{"USER": "msdss"}) {
		t.Fatalf("Expected saved map back, got: %v", env)
	}

	if err := s.Set("PASSWORD", "msdss123"); err != nil {
		t.Fatalf("Expected no error setting, got: %v", err)
	}
	env, err = s.Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	want := map[string]string{"USER": "msdss", "PASSWORD": "msdss123"}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("Expected %v, got: %v", want, env)
	}

	if err := s.Delete("USER", false); err != nil {
		t.Fatalf("Expected no error deleting, got: %v", err)
	}
	env, err = s.Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	if !reflect.DeepEqual(env, map[string]string{"PASSWORD": "msdss123"}) {
		t.Fatalf("Expected map without USER, got: %v", env)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Expected no error clearing, got: %v", err)
	}
	if storeExists(t, s) {
		t.Fatalf("Expected store to not exist after clear")
	}
}

func TestStore_DefaultsPrecedence(t *testing.T) {
	s, _ := newTestStore(t)

	defaults := map[string]string{"A": "0", "B": "2"}
	if err := s.Save(map[string]string{"A": "1"}, defaults); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	// Explicit values win over defaults; defaults fill the gaps.
	env, err := s.Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	want := map[string]string{"A": "1", "B": "2"}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("Expected %v, got: %v", want, env)
	}

	// Save never mutates the caller's defaults map.
	if !reflect.DeepEqual(defaults, map[string]string{"A": "0", "B": "2"}) {
		t.Errorf("Expected defaults to be untouched, got: %v", defaults)
	}
}

func TestStore_LoadDefaultsPrecedence(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	defaults := map[string]string{"USER": "fallback", "DATABASE": "postgres"}
	env, err := s.Load(LoadOptions{Defaults: defaults})
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	want := map[string]string{"USER": "msdss", "DATABASE": "postgres"}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("Expected %v, got: %v", want, env)
	}
	if !reflect.DeepEqual(defaults, map[string]string{"USER": "fallback", "DATABASE": "postgres"}) {
		t.Errorf("Expected defaults to be untouched, got: %v", defaults)
	}
}

func TestStore_LoadSetEnv(t *testing.T) {
	s, environ := newTestStore(t)

	// Pre-existing unrelated entry that a default will clobber.
	if err := environ.Set("DATABASE", "mysql"); err != nil {
		t.Fatalf("Failed to seed environ: %v", err)
	}

	if err := s.Save(map[string]string{"USER": "msdss", "PASSWORD": "msdss123"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	defaults := map[string]string{"DATABASE": "postgres", "PASSWORD": "already-set"}
	if _, err := s.Load(LoadOptions{Defaults: defaults, SetEnv: true}); err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}

	// Stored values override defaults in the environment.
	if v, _ := environ.Lookup("PASSWORD"); v != "msdss123" {
		t.Errorf("Expected stored PASSWORD to win, got: %q", v)
	}
	// Defaults override pre-existing unrelated entries.
	if v, _ := environ.Lookup("DATABASE"); v != "postgres" {
		t.Errorf("Expected default DATABASE to be applied, got: %q", v)
	}
	if v, _ := environ.Lookup("USER"); v != "msdss" {
		t.Errorf("Expected stored USER to be applied, got: %q", v)
	}
}

func TestStore_LoadWithoutSetEnvDoesNotTouchEnviron(t *testing.T) {
	s, environ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}
	if _, err := s.Load(LoadOptions{}); err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}

	if _, ok := environ.Lookup("USER"); ok {
		t.Errorf("Expected environment to be untouched without SetEnv")
	}
}

func TestStore_LoadMissingKey(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}
	// Delete the key out from under the store. Load never creates a key.
	if err := DeleteKey(s.KeyPath); err != nil {
		t.Fatalf("Failed to delete key: %v", err)
	}

	_, err := s.Load(LoadOptions{})
	if !errors.Is(err, everrors.ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got: %v", err)
	}
}

func TestStore_LoadMissingEnvFile(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := EnsureKey(s.KeyPath); err != nil {
		t.Fatalf("Failed to create key: %v", err)
	}

	_, err := s.Load(LoadOptions{})
	if !errors.Is(err, everrors.ErrEnvNotFound) {
		t.Fatalf("Expected ErrEnvNotFound, got: %v", err)
	}
}

func TestStore_TamperDetection(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	blob, err := os.ReadFile(s.FilePath)
	if err != nil {
		t.Fatalf("Failed to read env file: %v", err)
	}
	blob[len(blob)/2] ^= 0x01
	if err := os.WriteFile(s.FilePath, blob, 0600); err != nil {
		t.Fatalf("Failed to write tampered file: %v", err)
	}

	env, err := s.Load(LoadOptions{Defaults: map[string]string{"USER": "fallback"}})
	if !errors.Is(err, everrors.ErrDecryptFailed) {
		t.Fatalf("Expected ErrDecryptFailed, got: %v", err)
	}
	if env != nil {
		t.Errorf("Expected no map on tamper, got: %v", env)
	}
}

func TestStore_WrongKey(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	otherKey, err := CreateKey()
	if err != nil {
		t.Fatalf("Failed to create key: %v", err)
	}
	if err := os.WriteFile(s.KeyPath, otherKey, 0700); err != nil {
		t.Fatalf("Failed to replace key: %v", err)
	}

	_, err = s.Load(LoadOptions{})
	if !errors.Is(err, everrors.ErrDecryptFailed) {
		t.Fatalf("Expected ErrDecryptFailed, got: %v", err)
	}
}

func TestStore_SaveReusesKey(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]string{"A": "1"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}
	firstKey, err := os.ReadFile(s.KeyPath)
	if err != nil {
		t.Fatalf("Failed to read key: %v", err)
	}

	if err := s.Save(map[string]string{"A": "2"}, nil); err != nil {
		t.Fatalf("Expected no error saving again, got: %v", err)
	}
	secondKey, err := os.ReadFile(s.KeyPath)
	if err != nil {
		t.Fatalf("Failed to read key: %v", err)
	}

	if string(firstKey) != string(secondKey) {
		t.Errorf("Expected second save to reuse the existing key")
	}
}

func TestStore_SetMirrorsIntoEnviron(t *testing.T) {
	s, environ := newTestStore(t)

	if err := s.Save(nil, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}
	if err := s.Set("TOKEN", "abc123"); err != nil {
		t.Fatalf("Expected no error setting, got: %v", err)
	}

	if v, ok := environ.Lookup("TOKEN"); !ok || v != "abc123" {
		t.Errorf("Expected TOKEN=abc123 in environment, got: %q (set=%t)", v, ok)
	}
}

func TestStore_DeleteStrict(t *testing.T) {
	s, environ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	err := s.Delete("MISSING", true)
	if !errors.Is(err, everrors.ErrNameNotFound) {
		t.Fatalf("Expected ErrNameNotFound, got: %v", err)
	}

	// Non-strict delete of a missing name is a no-op.
	if err := s.Delete("MISSING", false); err != nil {
		t.Fatalf("Expected no error for non-strict delete, got: %v", err)
	}

	// Delete removes from both the stored map and the environment.
	if err := environ.Set("USER", "msdss"); err != nil {
		t.Fatalf("Failed to seed environ: %v", err)
	}
	if err := s.Delete("USER", true); err != nil {
		t.Fatalf("Expected no error deleting USER, got: %v", err)
	}
	if _, ok := environ.Lookup("USER"); ok {
		t.Errorf("Expected USER to be unset in environment")
	}
	env, err := s.Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	if _, ok := env["USER"]; ok {
		t.Errorf("Expected USER to be gone from stored map")
	}
}

func TestStore_Update(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss", "SECRET": "some-secret"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	if err := s.Update(map[string]string{"USER": "MSDSS", "PASSWORD": "msdss123"}); err != nil {
		t.Fatalf("Expected no error updating, got: %v", err)
	}

	env, err := s.Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	want := map[string]string{"USER": "MSDSS", "SECRET": "some-secret", "PASSWORD": "msdss123"}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("Expected %v, got: %v", want, env)
	}
}

func TestStore_ClearIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Expected no error on first clear, got: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Expected no error on second clear, got: %v", err)
	}
	if storeExists(t, s) {
		t.Errorf("Expected store to not exist after clear")
	}
}

func TestStore_ExistsRequiresBothFiles(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	if err := os.Remove(s.FilePath); err != nil {
		t.Fatalf("Failed to remove env file: %v", err)
	}
	if storeExists(t, s) {
		t.Errorf("Expected Exists to be false with only the key file present")
	}
}

func TestStore_ExistsReportsConfigError(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	// An unreadable config.toml must surface as an error, not read as
	// "store absent".
	configDir := filepath.Join(configHome, "envault")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("key_path = [broken"), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	s := New(filepath.Join(t.TempDir(), ".env"), "")
	if _, err := s.Exists(); err == nil {
		t.Fatalf("Expected error for unreadable config, got nil")
	}
}

// unsetRecordingEnviron runs a callback before delegating Unset, so tests
// can observe the state of the env file at unset time.
type unsetRecordingEnviron struct {
	*MapEnviron
	onUnset func()
}

func (e *unsetRecordingEnviron) Unset(name string) error {
	if e.onUnset != nil {
		e.onUnset()
	}
	return e.MapEnviron.Unset(name)
}

func TestStore_DeleteSavesBeforeUnset(t *testing.T) {
	s, environ := newTestStore(t)
	rec := &unsetRecordingEnviron{MapEnviron: environ}
	s.Environ = rec

	if err := s.Save(map[string]string{"USER": "msdss"}, nil); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}
	if err := environ.Set("USER", "msdss"); err != nil {
		t.Fatalf("Failed to seed environ: %v", err)
	}

	// If a save fails, the environment must be left untouched, which
	// means the file has to be rewritten before the unset happens.
	savedFirst := false
	rec.onUnset = func() {
		key, err := ReadKey(s.KeyPath)
		if err != nil {
			t.Fatalf("Failed to read key: %v", err)
		}
		blob, err := os.ReadFile(s.FilePath)
		if err != nil {
			t.Fatalf("Failed to read env file: %v", err)
		}
		plaintext, err := Decrypt(key, blob)
		if err != nil {
			t.Fatalf("Failed to decrypt env file: %v", err)
		}
		env, err := Decode(plaintext)
		if err != nil {
			t.Fatalf("Failed to decode env file: %v", err)
		}
		_, stillThere := env["USER"]
		savedFirst = !stillThere
	}

	if err := s.Delete("USER", false); err != nil {
		t.Fatalf("Expected no error deleting, got: %v", err)
	}
	if !savedFirst {
		t.Errorf("Expected the env file to be rewritten before the environment is unset")
	}
	if _, ok := environ.Lookup("USER"); ok {
		t.Errorf("Expected USER to be unset after delete")
	}
}

func TestApply_OverrideSemantics(t *testing.T) {
	environ := NewMapEnviron()
	if err := environ.Set("EXISTING", "old"); err != nil {
		t.Fatalf("Failed to seed environ: %v", err)
	}

	vars := map[string]string{"EXISTING": "new", "FRESH": "value"}

	if err := Apply(environ, vars, false); err != nil {
		t.Fatalf("Expected no error applying, got: %v", err)
	}
	if v, _ := environ.Lookup("EXISTING"); v != "old" {
		t.Errorf("Expected existing value to win without override, got: %q", v)
	}
	if v, _ := environ.Lookup("FRESH"); v != "value" {
		t.Errorf("Expected fresh value to be set, got: %q", v)
	}

	if err := Apply(environ, vars, true); err != nil {
		t.Fatalf("Expected no error applying, got: %v", err)
	}
	if v, _ := environ.Lookup("EXISTING"); v != "new" {
		t.Errorf("Expected incoming value to win with override, got: %q", v)
	}
}
