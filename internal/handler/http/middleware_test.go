package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── trace id ────────────────────────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "client id kept", incoming: "trace-123", keep: true},
		{name: "missing id generated", incoming: ""},
		{name: "id with spaces replaced", incoming: "bad id"},
		{name: "overlong id replaced", incoming: strings.Repeat("x", maxTraceIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()

			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
			assert.Contains(t, buf.String(), `"trace_id":"`+got+`"`)
		})
	}
}

// ── gzip ────────────────────────────────────────────────────────────────────

func TestAcceptsGzip(t *testing.T) {
	for header, want := range map[string]bool{
		"gzip":                       true,
		"deflate, gzip, br":          true,
		"gzip;q=1.0, identity;q=0.5": true,
		"gzip; q=0":                  false,
		"gzip;q=0.0":                 false,
		"br":                         false,
		"":                           false,
		"x-gzip":                     false,
	} {
		assert.Equal(t, want, acceptsGzip(header), header)
	}
}

func TestWithGZip_CompressesResponse(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "13")
		w.Write([]byte("Hello, World!"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
	assert.Empty(t, rec.Header().Get("Content-Length"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(body))
}

func TestWithGZip_NoBodyStatusesUntouched(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}

func TestWithGZip_DecompressesRequest(t *testing.T) {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write([]byte(`{"title":"GitHub"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var received string
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, r.Body.Close())
		received = string(b)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/", &compressed)
	req.Header.Set("Content-Encoding", "gzip")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"title":"GitHub"}`, received)
}

func TestWithGZip_InvalidRequestBody(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── rate limit ──────────────────────────────────────────────────────────────

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIPRateLimiter(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"), "burst exhausted")
	assert.True(t, l.allow("10.0.0.2"), "buckets are per ip")

	now = now.Add(time.Second)
	assert.True(t, l.allow("10.0.0.1"), "one token refilled")

	now = now.Add(visitorTTL + visitorSweepGap)
	l.allow("10.0.0.3")
	assert.Len(t, l.visitors, 1, "idle visitors are swept")
}

func TestNewIPRateLimiter_DefaultBurst(t *testing.T) {
	assert.Equal(t, 3, newIPRateLimiter(2.5, 0).burst)
	assert.Equal(t, 1, newIPRateLimiter(0.2, -1).burst)
}

func TestWithRateLimit_Router(t *testing.T) {
	f := newFixture(t, config.Server{RateLimit: 1, RateBurst: 1})
	f.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0")

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/version", "", nil).Code)

	rec := f.do(http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientIP(req))
}

// ── routing ─────────────────────────────────────────────────────────────────

func TestUnregisteredMethodIsNotFound(t *testing.T) {
	f := newFixture(t, config.Server{})

	rec := f.do(http.MethodPatch, "/api/passwords", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, config.Server{AllowedOrigins: []string{"http://localhost:3000"}})

	header := http.Header{}
	header.Set("Origin", "http://localhost:3000")
	header.Set("Access-Control-Request-Method", http.MethodPost)
	header.Set("Access-Control-Request-Headers", "Authorization")

	rec := f.do(http.MethodOptions, "/api/passwords", "", header)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	header.Set("Origin", "http://evil.example")
	rec = f.do(http.MethodOptions, "/api/passwords", "", header)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_GzipAndTraceHeaders(t *testing.T) {
	f := newFixture(t, config.Server{})
	f.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("9.9.9")

	rec := f.do(http.MethodGet, "/api/version", "", http.Header{"Accept-Encoding": {"gzip"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", string(body))
}
