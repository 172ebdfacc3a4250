// Package config provides configuration management for the Aniscout application.
//
// Configuration is loaded from environment variables with sensible defaults.
// The package supports:
//   - AniList API endpoint and request timeouts
//   - Entity linker cache location, TTL and confidence threshold
//   - Feed fetch window and per-source limits
//   - File paths for the data store
//   - HTTP server settings
//   - Sync intervals
//
// All configuration values are validated during startup to ensure
// the application has the required settings to function properly.
package config
