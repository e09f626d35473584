package queue

import "fmt"

// Entry is a URL tagged with its download state. It is implemented by
// Pending and Failed only.
type Entry interface {
	entry()
	// URL returns the raw queued URL.
	URL() string
}

// Pending is a URL still waiting to be downloaded. It is the only state
// persisted in the queue file.
type Pending struct {
	Link string
}

// Failed is a URL whose download attempt did not succeed. Failed entries
// are reported and recorded in history; they are never written back to the
// queue file.
type Failed struct {
	Link   string
	Reason string
}

func (Pending) entry() {}
func (Failed) entry()  {}

func (p Pending) URL() string { return p.Link }
func (f Failed) URL() string  { return f.Link }

// Describe renders an entry for display.
func Describe(e Entry) string {
	switch v := e.(type) {
	case Pending:
		return v.Link
	case Failed:
		if v.Reason == "" {
			return fmt.Sprintf("%s FAILED", v.Link)
		}
		return fmt.Sprintf("%s FAILED (%s)", v.Link, v.Reason)
	default:
		panic(fmt.Sprintf("queue: unknown entry type %T", e))
	}
}

// Fail converts an entry into its Failed form.
func Fail(e Entry, reason string) Failed {
	switch v := e.(type) {
	case Pending:
		return Failed{Link: v.Link, Reason: reason}
	case Failed:
		if reason == "" {
			reason = v.Reason
		}
		return Failed{Link: v.Link, Reason: reason}
	default:
		panic(fmt.Sprintf("queue: unknown entry type %T", e))
	}
}
