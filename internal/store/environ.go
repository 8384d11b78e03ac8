package store

import "os"

// Environ is the process-environment capability used by the store. The
// ambient environment is process-wide mutable state; routing every read and
// write through this interface lets tests run against an isolated map
// instead of the real process.
type Environ interface {
	// Lookup returns the value of the variable and whether it is set.
	Lookup(name string) (string, bool)

	// Set writes the variable into the environment.
	Set(name, value string) error

	// Unset removes the variable from the environment.
	Unset(name string) error
}

type osEnviron struct{}

// OSEnviron returns the real process environment.
func OSEnviron() Environ {
	return osEnviron{}
}

func (osEnviron) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (osEnviron) Set(name, value string) error {
	return os.Setenv(name, value)
}

func (osEnviron) Unset(name string) error {
	return os.Unsetenv(name)
}

// MapEnviron is an in-memory Environ for tests.
type MapEnviron struct {
	vars map[string]string
}

// NewMapEnviron returns an empty in-memory environment.
func NewMapEnviron() *MapEnviron {
	return &MapEnviron{vars: make(map[string]string)}
}

func (m *MapEnviron) Lookup(name string) (string, bool) {
	v, ok := m.vars[name]
	return v, ok
}

func (m *MapEnviron) Set(name, value string) error {
	m.vars[name] = value
	return nil
}

func (m *MapEnviron) Unset(name string) error {
	delete(m.vars, name)
	return nil
}

// Apply writes each pair of vars into env. With override, existing values
// for the same name are replaced; without, existing values win and the
// incoming value is skipped for that name.
func Apply(env Environ, vars map[string]string, override bool) error {
	for name, value := range vars {
		if !override {
			if _, exists := env.Lookup(name); exists {
				continue
			}
		}
		if err := env.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}
