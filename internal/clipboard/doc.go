// Package clipboard reads a URL candidate from the system clipboard for the
// add command.
package clipboard
