// Package store implements the encrypted env file store.
//
// A store is a pair of files: an encrypted env file (conventionally ./.env)
// holding a string-to-string variable mapping, and a symmetric key file
// kept elsewhere (by default under the user config dir). Separating the two
// means possession of the env file alone reveals nothing.
//
// # On-disk format
//
// The env map is serialized as dotenv text, then sealed with NaCl secretbox
// under a 32-byte key. The random 24-byte nonce is prepended to the
// ciphertext, so the file is self-contained. secretbox is authenticated
// encryption: a flipped byte, a truncated file, or the wrong key fails
// loudly with ErrDecryptFailed instead of loading garbage values into a
// running process's environment.
//
// The key file holds the raw 32 key bytes and is created with mode 0700 on
// first save. An existing key file is never regenerated in place;
// regeneration requires Clear first.
//
// # Merge policy
//
// Both Load and Save accept a defaults map used only as fallback: explicit
// or stored values always win over defaults for the same name. Caller maps
// are never mutated.
//
// # Process environment
//
// The store touches the ambient environment in exactly three places: Load
// with SetEnv applies defaults then stored values (override on), Set
// mirrors the one variable it writes, and Delete unsets the one variable it
// removes. All access goes through the Environ interface so tests can
// substitute an isolated in-memory environment.
package store
