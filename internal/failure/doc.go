// Package failure defines the error markers shared by nasutil components and
// maps them onto process exit codes.
//
// Components wrap their errors with one of the exported sentinels so the CLI
// can decide how loudly to fail without inspecting message text: per-URL
// download errors are reported and skipped, while losing the queue file
// terminates the process with a distinct exit code.
package failure
