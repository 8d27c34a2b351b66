package streaming

import (
	"fmt"
	"strconv"
	"strings"
)

// Window is an inclusive byte span [Start, End] within an object of known
// length, clamped so that 0 <= Start <= End <= length-1.
type Window struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the window covers.
func (w Window) Length() int64 {
	return w.End - w.Start + 1
}

// ContentRange formats the Content-Range header value for a 206 response.
func (w Window) ContentRange(contentLength int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", w.Start, w.End, contentLength)
}

// ParseRange interprets a Range header against an object of the given
// length. It accepts the single-range form "bytes=<start>-<end>"; the end
// may be omitted. An end of zero or past the object is clamped to
// length-1, so "bytes=0-" covers the whole object.
//
// The second return value reports whether a usable window was parsed;
// absent or malformed headers (and empty objects) return false and the
// caller serves the full object with a 200.
func ParseRange(header string, contentLength int64) (Window, bool) {
	if contentLength <= 0 {
		return Window{}, false
	}

	spec, found := strings.CutPrefix(header, "bytes=")
	if !found {
		return Window{}, false
	}

	startStr, endStr, found := strings.Cut(spec, "-")
	if !found {
		return Window{}, false
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return Window{}, false
	}

	var end int64
	if trimmed := strings.TrimSpace(endStr); trimmed != "" {
		end, err = strconv.ParseInt(trimmed, 10, 64)
		if err != nil || end < 0 {
			return Window{}, false
		}
	}

	// An end of zero (or omitted) and anything past the object clamps to
	// the last byte.
	if end == 0 || end >= contentLength {
		end = contentLength - 1
	}
	if start >= contentLength {
		start = contentLength - 1
	}
	if start > end {
		return Window{}, false
	}

	return Window{Start: start, End: end}, true
}
