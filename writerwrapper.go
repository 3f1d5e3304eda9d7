package signpost

import (
	"bufio"
	"io"
	"net"
	"net/http"
	"sync"
)

// WrapResponseWriter proxies an http.ResponseWriter, allowing hooks into
// the response process.
type WrapResponseWriter interface {
	http.ResponseWriter
	Status() int
	BytesWritten() int
	Unwrap() http.ResponseWriter
	Discard()
	Reset(w http.ResponseWriter)
}

// writerPool recycles wrapped writers across requests.
var writerPool = sync.Pool{
	New: func() any {
		return &responseWriter{}
	},
}

func newWrapResponseWriter(w http.ResponseWriter) WrapResponseWriter {
	wr := writerPool.Get().(*responseWriter)
	wr.Reset(w)
	return wr
}

func freeWrapResponseWriter(w WrapResponseWriter) {
	if rw, ok := w.(*responseWriter); ok {
		writerPool.Put(rw)
	}
}

// responseWriter implements WrapResponseWriter and checks the underlying
// writer's capabilities at runtime, so one pooled type serves every
// connection kind. Discard suppresses the body while still recording the
// status, used for HEAD answered by a GET handler.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
	code        int
	bytes       int
	discard     bool
}

func (b *responseWriter) WriteHeader(code int) {
	if b.wroteHeader || (code >= 100 && code <= 199 && code != http.StatusSwitchingProtocols) {
		return
	}

	b.code = code
	b.wroteHeader = true
	b.ResponseWriter.WriteHeader(code)
}

func (b *responseWriter) Write(buf []byte) (int, error) {
	b.maybeWriteHeader()

	if b.discard {
		return io.Discard.Write(buf)
	}

	n, err := b.ResponseWriter.Write(buf)
	b.bytes += n
	return n, err
}

func (b *responseWriter) maybeWriteHeader() {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
}

func (b *responseWriter) Status() int                 { return b.code }
func (b *responseWriter) BytesWritten() int           { return b.bytes }
func (b *responseWriter) Unwrap() http.ResponseWriter { return b.ResponseWriter }
func (b *responseWriter) Discard()                    { b.discard = true }

func (b *responseWriter) Reset(w http.ResponseWriter) {
	b.ResponseWriter = w
	b.wroteHeader = false
	b.code = 0
	b.bytes = 0
	b.discard = false
}

// Flush implements http.Flusher
func (b *responseWriter) Flush() {
	if f, ok := b.ResponseWriter.(http.Flusher); ok {
		b.wroteHeader = true
		f.Flush()
	}
}

// Hijack implements http.Hijacker
func (b *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := b.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

var (
	_ http.Flusher       = &responseWriter{}
	_ http.Hijacker      = &responseWriter{}
	_ WrapResponseWriter = &responseWriter{}
)
