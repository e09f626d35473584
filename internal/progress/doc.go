// Package progress parses download progress samples out of external tool
// output and renders them as a fixed-width bar suitable for redrawing a
// single terminal line.
package progress
