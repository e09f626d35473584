package testsupport

import (
	"fmt"
	"strings"
)

// FakeYTDLPScript returns a POSIX shell body imitating yt-dlp output. The
// stub records its working directory in ./invocations.log and writes a
// placeholder file named after the URL's last path segment.
func FakeYTDLPScript(failURLs ...string) string {
	var b strings.Builder
	b.WriteString(`if [ "$1" = "--version" ]; then echo "2024.08.06"; exit 0; fi
url=""
prev=""
for arg in "$@"; do
  case "$prev" in
    -f|-o|--merge-output-format) prev="$arg"; continue ;;
  esac
  case "$arg" in
    -*) ;;
    *) url="$arg" ;;
  esac
  prev="$arg"
done
echo "$PWD $url" >> invocations.log
`)
	for _, url := range failURLs {
		fmt.Fprintf(&b, "if [ \"$url\" = %q ]; then echo \"ERROR: [youtube] unavailable\" >&2; exit 1; fi\n", url)
	}
	b.WriteString(`name=$(basename "$url")
echo "[youtube] $name: Downloading webpage"
echo "[download] Destination: Uploader---$name.f137.mp4"
printf '[download]  25.0%% of 1.00MiB at 1.00MiB/s ETA 00:03\r'
printf '[download] 100.0%% of 1.00MiB at 1.00MiB/s ETA 00:00\n'
: > "Uploader---$name.mp4"
exit 0
`)
	return b.String()
}
