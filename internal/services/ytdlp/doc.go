// Package ytdlp mediates access to the yt-dlp CLI used for every download.
//
// It owns the fixed argument set (best mp4 video+audio, merged into one
// container, restricted filenames, uploader---title naming), streams the
// tool's stdout through linesplit so carriage-return progress redraws arrive
// as individual lines, and classifies those lines into destination and
// progress events for the download driver.
//
// Prefer this package over ad-hoc exec.Command usage so argument handling,
// stderr capture, and error classification stay consistent.
package ytdlp
