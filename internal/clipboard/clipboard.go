package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"

	"nasutil/internal/failure"
)

// Source yields the current clipboard text.
type Source interface {
	ReadURL() (string, error)
}

// System reads from the platform clipboard (xclip, xsel, wl-paste, pbpaste,
// or the Windows API depending on the host).
type System struct{}

// ReadURL returns the trimmed clipboard contents.
func (System) ReadURL() (string, error) {
	if clipboard.Unsupported {
		return "", failure.Wrap(failure.ErrConfig, "read clipboard", "no clipboard utility available", nil)
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", failure.Wrap(failure.ErrIO, "read clipboard", "", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", failure.Wrap(failure.ErrValidation, "read clipboard", "clipboard is empty", nil)
	}
	return text, nil
}

// Static returns a fixed value; used when the text is already known.
type Static string

// ReadURL implements Source.
func (s Static) ReadURL() (string, error) {
	text := strings.TrimSpace(string(s))
	if text == "" {
		return "", failure.Wrap(failure.ErrValidation, "read clipboard", "clipboard is empty", nil)
	}
	return text, nil
}
