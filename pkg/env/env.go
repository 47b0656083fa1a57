// Package env reads raw process environment values for the few settings
// needed before config.Load has run.
package env

import "os"

// Get returns the named variable, preferring the OCTOFIT_-prefixed form
// so ad-hoc overrides line up with the config surface. Falls back to the
// given default when neither form is set.
func Get(key, fallback string) string {
	if val := os.Getenv("OCTOFIT_" + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
