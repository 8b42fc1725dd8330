// Package config reads application configuration from environment
// variables, with defaults suitable for local development. Validate
// reports every problem at once so a misconfigured deployment fails
// with the full list instead of one error per restart.
package config
