// Package file provides file-based configuration loading. Settings are
// read from a TOML file and overlaid with environment variables, with a
// .env file honoured for development setups.
package file
