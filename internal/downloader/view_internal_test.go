package downloader

import "testing"

func TestShortTitleCountsRunes(t *testing.T) {
	cases := []struct {
		title string
		width int
		want  string
	}{
		{"short", 40, "short"},
		{"abcdef", 3, "abc"},
		{"ääääää", 4, "ääää"},
		{"", 40, ""},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := shortTitle(tc.title, tc.width); got != tc.want {
			t.Errorf("shortTitle(%q, %d) = %q, want %q", tc.title, tc.width, got, tc.want)
		}
	}
}
