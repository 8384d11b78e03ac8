// Package configs resolves per-user envault paths and the optional
// config.toml overrides.
//
// envault keeps exactly two kinds of state outside the working directory:
//
//   - the symmetric key file, by default <user-config-dir>/envault/.env.key
//   - config.toml, which may override the default key and env file paths
//
// The encrypted env file itself lives wherever the caller points it,
// conventionally ./.env in the project directory.
//
// # config.toml
//
//	key_path = "/secure/volume/.env.key"
//	env_file = "./.env.production"
//
// Both keys are optional. Command-line flags take precedence over
// config.toml, which takes precedence over the built-in defaults.
package configs
