package ytdlp

import (
	"path/filepath"
	"strings"

	"nasutil/internal/progress"
)

const (
	destinationMarker = "Destination"
	destinationPrefix = "[download] Destination: "
	unknownTitle      = "NO TITLE?"
)

// EventKind identifies what an output line reported.
type EventKind int

const (
	// EventDestination carries the output file name yt-dlp is writing.
	EventDestination EventKind = iota + 1
	// EventProgress carries a parsed progress sample.
	EventProgress
)

// Event is a classified line of yt-dlp output.
type Event struct {
	Kind     EventKind
	Title    string
	Progress progress.Sample
	Line     string
}

// ParseLine classifies one line of yt-dlp output. Lines that carry neither
// a destination nor a well-formed progress sample return false; that
// includes progress-looking lines whose numbers do not parse.
func ParseLine(line string) (Event, bool) {
	switch {
	case strings.Contains(line, destinationMarker):
		return Event{Kind: EventDestination, Title: titleFromDestination(line), Line: line}, true
	case progress.HasETA(line):
		sample, ok := progress.ParseSample(line)
		if !ok {
			return Event{}, false
		}
		return Event{Kind: EventProgress, Progress: sample, Line: line}, true
	default:
		return Event{}, false
	}
}

func titleFromDestination(line string) string {
	name := strings.TrimSpace(line)
	if idx := strings.Index(name, destinationPrefix); idx >= 0 {
		name = name[idx+len(destinationPrefix):]
	} else if idx := strings.Index(name, destinationMarker+":"); idx >= 0 {
		name = name[idx+len(destinationMarker)+1:]
	}
	name = filepath.Base(strings.TrimSpace(name))
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return unknownTitle
	}
	return name
}
