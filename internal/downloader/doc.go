// Package downloader drains the download queue one URL at a time.
//
// The Driver loads the queue file, hands the head URL to a Fetcher (the
// yt-dlp client in production), renders progress while the fetch runs, and
// then removes that URL from the queue whether or not the fetch succeeded.
// Failures are reported on stderr and in the attempt history, never retried
// within the same run. Losing the ability to persist the queue aborts the
// run, since continuing would repeat or drop downloads silently.
package downloader
