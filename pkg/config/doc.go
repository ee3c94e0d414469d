// Package config loads node configuration from a YAML file with
// environment variable fallbacks (PHANT_URL, PHANT_LISTEN,
// PHANT_PRIVATE_KEY, PHANT_PUBLIC_KEY, PHANT_DEBUG).
package config
