package progress

import (
	"regexp"
	"strconv"
	"strings"
)

var samplePattern = regexp.MustCompile(`([0-9]+\.[0-9]+)%.*ETA (\S+)`)

// Sample is a single (percentage, ETA) reading taken from one output line.
type Sample struct {
	Percent float64
	ETA     string
}

// HasETA reports whether line looks like a progress line worth parsing.
func HasETA(line string) bool {
	return strings.Contains(line, "ETA")
}

// ParseSample extracts a progress sample from a yt-dlp style line such as
//
//	[download]  45.3% of ~12.34MiB at  1.23MiB/s ETA 00:07
//
// Lines that do not fit the pattern return false.
func ParseSample(line string) (Sample, bool) {
	m := samplePattern.FindStringSubmatch(line)
	if m == nil {
		return Sample{}, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Sample{}, false
	}
	return Sample{Percent: clamp(pct), ETA: m[2]}, true
}
