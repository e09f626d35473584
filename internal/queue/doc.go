// Package queue owns the on-disk download queue: a plain-text file holding
// one URL per line in FIFO order.
//
// Every mutation is durable on return. Single inserts are append-only writes;
// anything that rewrites the file goes through SaveAtomic, which stages the
// new content in a sibling ".bak" file and renames it over the canonical
// path, so a crash never leaves a truncated queue behind.
//
// The file is not locked. The tool assumes one invoking process at a time;
// two concurrent invocations can lose each other's edits.
package queue
