package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	body := strings.Repeat("Hello, alumni! ", 500)

	handler := func(contentType string, status int) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if contentType != "" {
				w.Header().Set("Content-Type", contentType)
			}
			w.WriteHeader(status)
			if status != http.StatusNoContent {
				_, _ = io.WriteString(w, body)
			}
		})
	}

	tests := []struct {
		name           string
		acceptEncoding string
		contentType    string
		status         int
		level          int
		expectGzip     bool
	}{
		{"client accepts gzip", "gzip, deflate", "text/html", http.StatusOK, 6, true},
		{"client does not accept gzip", "deflate", "text/html", http.StatusOK, 6, false},
		{"no accept-encoding header", "", "text/html", http.StatusOK, 6, false},
		{"gzip disabled with q=0", "gzip;q=0, br", "text/html", http.StatusOK, 6, false},
		{"json compressed at best level", "gzip", "application/json", http.StatusOK, 9, true},
		{"images are not compressed", "gzip", "image/png", http.StatusOK, 6, false},
		{"invalid level falls back to default", "gzip", "text/css", http.StatusOK, 42, true},
		{"no content", "gzip", "text/html", http.StatusNoContent, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()

			Compression(CompressionConfig{Level: tt.level})(handler(tt.contentType, tt.status)).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if !tt.expectGzip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				if tt.status != http.StatusNoContent {
					assert.Equal(t, body, rec.Body.String())
				}
				return
			}

			assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")
			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			plain, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, body, string(plain))
		})
	}
}

func TestCompression_HeadPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	Compression(CompressionConfig{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
}

func TestCompression_DetectsContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	Compression(CompressionConfig{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<!doctype html><html><body>hi</body></html>")
	})).ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestAcceptsGzip(t *testing.T) {
	assert.True(t, acceptsGzip("br, GZIP"))
	assert.True(t, acceptsGzip("gzip;q=0.5"))
	assert.False(t, acceptsGzip("gzip; q=0"))
	assert.False(t, acceptsGzip("gzipx"))
	assert.False(t, acceptsGzip(""))
}
