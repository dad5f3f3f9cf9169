package chi

import (
	"bytes"
	"net/http"
)

// ScreenBuffer captures one rendered screen. It stands in for the
// ResponseWriter when a location is dispatched in-process.
type ScreenBuffer struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	headerWrote bool
}

// NewScreenBuffer returns an empty buffer with status 200.
func NewScreenBuffer() *ScreenBuffer {
	return &ScreenBuffer{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (b *ScreenBuffer) Header() http.Header {
	return b.header
}

func (b *ScreenBuffer) WriteHeader(status int) {
	if b.headerWrote {
		return
	}
	b.headerWrote = true
	b.statusCode = status
}

func (b *ScreenBuffer) Write(p []byte) (int, error) {
	b.headerWrote = true
	return b.body.Write(p)
}

// Status returns the status written by the screen.
func (b *ScreenBuffer) Status() int { return b.statusCode }

// String returns the rendered screen.
func (b *ScreenBuffer) String() string { return b.body.String() }
