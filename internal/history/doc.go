// Package history records every download attempt in a small SQLite database.
//
// The queue file only ever holds pending URLs, so this log is where failed
// attempts remain visible after the driver has dequeued them. Each row keeps
// the run identifier, URL, display title, outcome, error text, and the start
// and finish timestamps. The store applies the same pragmas and busy retry
// policy for every connection so concurrent nasutil invocations do not trip
// over each other.
package history
