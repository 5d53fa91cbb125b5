package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	encodingZstd = "zstd"
	encodingGzip = "gzip"
)

type encoder interface {
	io.WriteCloser
	Reset(io.Writer)
}

// Compress encodes response bodies with zstd or gzip, whichever the client
// accepts, preferring zstd. WebSocket upgrades and bodiless responses pass
// through untouched.
func Compress() gin.HandlerFunc {
	pools := map[string]*sync.Pool{
		encodingGzip: {New: func() any {
			w, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
			return w
		}},
		encodingZstd: {New: func() any {
			w, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
			return w
		}},
	}

	return func(c *gin.Context) {
		encoding := negotiateEncoding(c.GetHeader("Accept-Encoding"))
		if encoding == "" || isUpgrade(c.Request) || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		pool := pools[encoding]
		cw := &compressWriter{ResponseWriter: c.Writer, encoding: encoding, pool: pool}
		c.Writer = cw
		c.Header("Vary", "Accept-Encoding")

		defer cw.finish()
		c.Next()
	}
}

// negotiateEncoding picks the preferred supported encoding from an
// Accept-Encoding header, ignoring entries with a zero quality.
func negotiateEncoding(header string) string {
	accepted := make(map[string]bool)
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				continue
			}
		}
		accepted[name] = true
	}

	switch {
	case accepted[encodingZstd]:
		return encodingZstd
	case accepted[encodingGzip], accepted["*"]:
		return encodingGzip
	default:
		return ""
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// compressWriter starts encoding lazily so responses without a body never
// get an encoding header or a compression trailer.
type compressWriter struct {
	gin.ResponseWriter
	encoding string
	pool     *sync.Pool
	enc      encoder
	decided  bool
}

func (w *compressWriter) WriteHeader(code int) {
	w.decide(code)
	w.ResponseWriter.WriteHeader(code)
}

func (w *compressWriter) decide(code int) {
	if w.decided {
		return
	}
	w.decided = true

	h := w.ResponseWriter.Header()
	if code < http.StatusOK || code == http.StatusNoContent || code == http.StatusNotModified || h.Get("Content-Encoding") != "" {
		return
	}

	h.Set("Content-Encoding", w.encoding)
	h.Del("Content-Length")
	w.enc = w.pool.Get().(encoder)
	w.enc.Reset(w.ResponseWriter)
}

func (w *compressWriter) Write(data []byte) (int, error) {
	w.decide(w.ResponseWriter.Status())
	if w.enc == nil {
		return w.ResponseWriter.Write(data)
	}
	return w.enc.Write(data)
}

func (w *compressWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *compressWriter) Flush() {
	if f, ok := w.enc.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
	w.ResponseWriter.Flush()
}

func (w *compressWriter) finish() {
	if w.enc == nil {
		return
	}
	_ = w.enc.Close()
	w.enc.Reset(io.Discard)
	w.pool.Put(w.enc)
	w.enc = nil
}
