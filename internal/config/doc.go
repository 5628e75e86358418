// Package config loads and validates dvdstream configuration.
//
// Configuration lives in a TOML file resolved from, in order: an explicit
// --config flag, ~/.config/dvdstream/config.toml, or dvdstream.toml in the
// working directory. Missing files are not an error; defaults apply. All path
// fields are ~-expanded and made absolute during load.
package config
