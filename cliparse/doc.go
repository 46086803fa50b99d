// Package cliparse parses server configuration from CLI flags with
// environment variable fallbacks. Secrets (RELAY_KEY) come from the
// environment only.
package cliparse
