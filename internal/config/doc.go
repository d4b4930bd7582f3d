// Package config loads composer settings from an optional YAML file,
// a .env file and COMPOSER_* environment variables, in that order of
// increasing precedence.
package config
