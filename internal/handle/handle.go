package handle

import (
	"fmt"

	everrors "github.com/envault/envault/internal/errors"
	"github.com/envault/envault/internal/store"
)

// Handle binds a fixed set of named variables to a store. Each alias maps
// to the actual environment variable name; the table is set once at
// construction and immutable afterwards. Get/Set/Delete/IsSet operate
// purely against the process environment through the bound alias, while
// Save/Load/Clear/Exists delegate to the underlying store.
type Handle struct {
	store    *store.Store
	aliases  map[string]string
	defaults map[string]string
}

// Options configures New.
type Options struct {
	// Defaults are fallback values used by Save and Load. Stored and
	// explicitly set values always win over defaults.
	Defaults map[string]string

	// AutoCreate initializes the backing files at construction: if the
	// store exists it is loaded into the environment, otherwise the
	// defaults are saved immediately and then loaded.
	AutoCreate bool
}

// New returns a handle over s for the given alias table. The table maps a
// short logical name to the environment variable it stands for, e.g.
// {"user": "MSDSS_USER"}. Both maps are copied; later changes to the
// caller's maps do not affect the handle.
func New(s *store.Store, aliases map[string]string, opts Options) (*Handle, error) {
	h := &Handle{
		store:    s,
		aliases:  make(map[string]string, len(aliases)),
		defaults: make(map[string]string, len(opts.Defaults)),
	}
	for alias, name := range aliases {
		h.aliases[alias] = name
	}
	for name, value := range opts.Defaults {
		h.defaults[name] = value
	}

	if opts.AutoCreate {
		exists, err := s.Exists()
		if err != nil {
			return nil, err
		}
		if !exists {
			if err := s.Save(nil, h.defaults); err != nil {
				return nil, fmt.Errorf("failed to create env store: %w", err)
			}
		}
		if _, err := h.Load(); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// resolve maps an alias to its environment variable name.
func (h *Handle) resolve(alias string) (string, error) {
	name, ok := h.aliases[alias]
	if !ok {
		return "", fmt.Errorf("%w: %s", everrors.ErrUnknownAlias, alias)
	}
	return name, nil
}

// Name returns the environment variable name bound to alias.
func (h *Handle) Name(alias string) (string, error) {
	return h.resolve(alias)
}

// Get returns the current value of the variable bound to alias from the
// process environment, and whether it is set.
func (h *Handle) Get(alias string) (string, bool, error) {
	name, err := h.resolve(alias)
	if err != nil {
		return "", false, err
	}
	value, ok := h.store.Environ.Lookup(name)
	return value, ok, nil
}

// GetDefault returns the variable's value, or def if it is unset.
func (h *Handle) GetDefault(alias, def string) (string, error) {
	value, ok, err := h.Get(alias)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return value, nil
}

// IsSet reports whether the variable bound to alias is set in the process
// environment.
func (h *Handle) IsSet(alias string) (bool, error) {
	_, ok, err := h.Get(alias)
	return ok, err
}

// Set writes value into the process environment under the variable bound
// to alias. Only Save persists it.
func (h *Handle) Set(alias, value string) error {
	name, err := h.resolve(alias)
	if err != nil {
		return err
	}
	return h.store.Environ.Set(name, value)
}

// Delete unsets the variable bound to alias in the process environment.
// With strict, deleting an unset variable returns ErrNameNotFound.
func (h *Handle) Delete(alias string, strict bool) error {
	name, err := h.resolve(alias)
	if err != nil {
		return err
	}
	if _, ok := h.store.Environ.Lookup(name); !ok {
		if strict {
			return fmt.Errorf("%w: %s", everrors.ErrNameNotFound, name)
		}
		return nil
	}
	return h.store.Environ.Unset(name)
}

// Save persists the current environment values of every bound variable,
// merged over the handle's defaults. Bound variables that are unset in the
// environment are left to the defaults.
func (h *Handle) Save() error {
	env := make(map[string]string, len(h.aliases))
	for _, name := range h.aliases {
		if value, ok := h.store.Environ.Lookup(name); ok {
			env[name] = value
		}
	}
	return h.store.Save(env, h.defaults)
}

// Load loads the store with the handle's defaults and applies the result
// to the process environment.
func (h *Handle) Load() (map[string]string, error) {
	return h.store.Load(store.LoadOptions{Defaults: h.defaults, SetEnv: true})
}

// Clear deletes the backing env and key files.
func (h *Handle) Clear() error {
	return h.store.Clear()
}

// Exists reports whether the backing files are present.
func (h *Handle) Exists() (bool, error) {
	return h.store.Exists()
}
