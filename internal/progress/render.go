package progress

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Cells is the number of discrete positions in a rendered bar.
	Cells = 10

	fullMark       = '='
	transitionMark = '>'
	emptyMark      = ' '
)

// Render maps percent onto a Cells-wide bar and appends the ETA:
//
//	Render(42, "1:05") == "[====>     ] (ETA 1:05)"
//
// Percent outside [0,100] is clamped; NaN renders as 0.
func Render(percent float64, eta string) string {
	full := fullCells(percent)

	var b strings.Builder
	b.Grow(Cells + len(eta) + 10)
	b.WriteByte('[')
	for i := 0; i < Cells; i++ {
		switch {
		case i < full:
			b.WriteRune(fullMark)
		case i == full:
			b.WriteRune(transitionMark)
		default:
			b.WriteRune(emptyMark)
		}
	}
	b.WriteString("] (ETA ")
	b.WriteString(eta)
	b.WriteByte(')')
	return b.String()
}

// Line formats the full status line shown while a download is in flight.
func Line(title string, sample Sample) string {
	pct := clamp(sample.Percent)
	return fmt.Sprintf("%s...: %5.1f%% %s", title, pct, Render(pct, sample.ETA))
}

func fullCells(percent float64) int {
	full := int(math.Floor(clamp(percent) / (100 / Cells)))
	if full > Cells {
		return Cells
	}
	return full
}

func clamp(percent float64) float64 {
	switch {
	case math.IsNaN(percent), percent < 0:
		return 0
	case percent > 100:
		return 100
	default:
		return percent
	}
}
