// Package services defines shared utilities consumed by the download driver
// and the external tool clients nested beneath it.
//
// Context helpers stamp the download run identifier and the URL in flight so
// log lines emitted deep inside a client can be correlated with the queue
// entry that triggered them. Tool integrations live in subpackages (ytdlp).
package services
