// Package handle provides a convenience layer that binds a fixed set of
// named variables to an encrypted env store.
//
// Applications usually care about a handful of variables with awkward
// full names. A handle maps short logical aliases to those names once,
// at construction:
//
//	s := store.New("./.env", "")
//	h, err := handle.New(s, map[string]string{
//	    "user":     "MSDSS_USER",
//	    "password": "MSDSS_PASSWORD",
//	}, handle.Options{
//	    Defaults:   map[string]string{"MSDSS_USER": "msdss"},
//	    AutoCreate: true,
//	})
//
// Get, Set, Delete, and IsSet then work purely against the process
// environment through the alias table, while Save, Load, Clear, and
// Exists delegate to the store with the handle's defaults.
package handle
