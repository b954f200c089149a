// Package config loads the TOML configuration of the converter. Values not
// present in the file keep their defaults; command line flags are applied on
// top by the caller.
package config
