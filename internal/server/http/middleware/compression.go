package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxRequestBody caps the decoded size of any request payload. Cart and
// checkout bodies are a few hundred bytes.
const MaxRequestBody int64 = 1 << 20

type gzipBody struct {
	*gzip.Reader
	raw io.Closer
}

func (b gzipBody) Close() error {
	_ = b.Reader.Close()
	return b.raw.Close()
}

// DecompressRequest accepts plain and gzip payloads and bounds the decoded
// body to limit bytes. Reads past the limit fail, which binding reports as a
// bad request.
func DecompressRequest(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = MaxRequestBody
	}
	return func(c *gin.Context) {
		req := c.Request
		switch strings.ToLower(strings.TrimSpace(req.Header.Get("Content-Encoding"))) {
		case "", "identity":
		case "gzip", "x-gzip":
			zr, err := gzip.NewReader(req.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed gzip body"})
				return
			}
			req.Body = gzipBody{Reader: zr, raw: req.Body}
			req.Header.Del("Content-Encoding")
			req.ContentLength = -1
		default:
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported content encoding"})
			return
		}

		if req.Body != nil && req.Body != http.NoBody {
			req.Body = http.MaxBytesReader(c.Writer, req.Body, limit)
		}
		c.Next()
	}
}
