package utils

import "io"

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical,
// typically HTTP response bodies after a probe or authority call.
func Close(c io.Closer) {
	_ = c.Close()
}
