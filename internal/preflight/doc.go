// Package preflight provides readiness checks run before a download pass.
//
// The download command refuses to start when yt-dlp cannot be found or the
// output directory is not writable, so a queue is never drained into
// guaranteed failures. Each check returns a Result so callers can print the
// full list or collapse it into a single error with Failed.
package preflight
