// Package linesplit turns a live byte stream into text lines the way a
// terminal would see them.
//
// Progress-reporting tools redraw a single terminal line by emitting a bare
// carriage return, so a bare "\r" is treated as a line boundary alongside
// "\n" and "\r\n". Lines are produced incrementally as data arrives; the
// stream is never buffered whole.
package linesplit
