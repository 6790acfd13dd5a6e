// Package config holds the settings of the festivals scraper and UI server.
//
// Settings start from built-in defaults that reproduce the scraper's fixed
// behavior, may be overridden by an optional YAML file and then by FESTIVALS_*
// environment variables, and are validated before use. Command-line flags are
// applied on top by the cli package.
package config
