// Package config loads the layered autoreview configuration: built-in
// defaults, then the JSON config file, then environment variables
// (optionally seeded from a .env file), then CLI flag overrides. The
// GitHub token is environment-only and never written to disk.
package config
