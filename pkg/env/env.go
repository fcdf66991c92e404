package env

import "os"

// Get reads an environment variable, falling back when it is unset or
// empty. Typed configuration goes through pkg/config; this is for the
// odd standalone lookup in commands and scripts.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
