// Package config loads, normalizes, and validates nasutil configuration.
//
// It supplies defaults, reads an optional TOML file, applies the
// NASUTIL_FILE and NASUTIL_DIR environment overrides, and expands user paths
// (including tilde shortcuts). The resulting Config is resolved once at
// startup and passed explicitly to the queue store and download driver; no
// package keeps path state of its own.
//
// The download directory is resolved lazily through ResolveOutputDir because
// NAS autodetection only matters to the download command.
package config
