package models

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/telemetry"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFetcher(userAgent string) *Fetcher {
	conf := &config.Configuration{}
	conf.Fetch.UserAgent = userAgent
	return NewFetcher(telemetry.NewNoopTrace(), &telemetry.Metric{}, zap.NewNop(), conf)
}

func TestFetchFallsBackOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models":
			http.Error(w, "no such route", http.StatusNotFound)
		case "/models":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[{"id":"b"},{"id":"a"}]}`))
		}
	}))
	defer srv.Close()

	candidates := BuildCandidateURLs(srv.URL)
	result, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), candidates, "sk-test", 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, result.IDs())
	assert.Equal(t, srv.URL+"/models", result.ResolvedURL)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, srv.URL+"/v1/models returned HTTP 404, trying fallback URL", result.Warnings[0])
}

func TestFetchSendsHeaders(t *testing.T) {
	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		headers <- r.Header.Clone()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	result, err := newTestFetcher("modelfetch/1.0").Fetch(context.Background(), srv.Client(), []string{srv.URL + "/v1/models"}, "sk-abc", 5*time.Second)

	require.NoError(t, err)
	assert.Empty(t, result.Models)
	assert.Empty(t, result.Warnings)
	got := <-headers
	assert.Equal(t, "Bearer sk-abc", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "modelfetch/1.0", got.Get("User-Agent"))
}

func TestFetchAuthFailureDoesNotFallback(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), BuildCandidateURLs(srv.URL), "bad", 5*time.Second)

	require.Error(t, err)
	e := cErr.From(err)
	assert.Equal(t, cErr.UPSTREAM_AUTH_FAILED, e.ErrorCode())
	assert.Contains(t, e.ErrorDesc(), "(HTTP 401)")
	assert.Contains(t, e.ErrorDesc(), "invalid api key")
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchNonJSONSuccessDoesNotFallback(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login</html>"))
	}))
	defer srv.Close()

	_, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), BuildCandidateURLs(srv.URL), "sk", 5*time.Second)

	require.Error(t, err)
	assert.Equal(t, cErr.UPSTREAM_PARSE_FAILED, cErr.From(err).ErrorCode())
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchEndpointMismatchOnLastCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	defer srv.Close()

	_, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), BuildCandidateURLs(srv.URL), "sk", 5*time.Second)

	require.Error(t, err)
	e := cErr.From(err)
	assert.Equal(t, cErr.UPSTREAM_ENDPOINT_MISMATCH, e.ErrorCode())
	assert.Equal(t, "models endpoint not found, make sure the endpoint is OpenAI-compatible (HTTP 405)", e.ErrorDesc())
}

func TestFetchServerErrorStopsImmediately(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), BuildCandidateURLs(srv.URL), "sk", 5*time.Second)

	require.Error(t, err)
	assert.Equal(t, cErr.FETCH_FAILED, cErr.From(err).ErrorCode())
	assert.Equal(t, "fetch models failed (HTTP 500)", cErr.From(err).ErrorDesc())
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchTimeoutOnEveryCandidate(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), BuildCandidateURLs(srv.URL), "sk", 50*time.Millisecond)

	require.Error(t, err)
	assert.Equal(t, cErr.UPSTREAM_TIMEOUT, cErr.From(err).ErrorCode())
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchTransportFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"m"}]}`))
	}))
	defer srv.Close()

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	result, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), []string{deadURL + "/v1/models", srv.URL + "/models"}, "sk", 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t, []string{"m"}, result.IDs())
	assert.Equal(t, []string{"request to " + deadURL + "/v1/models failed, trying fallback URL"}, result.Warnings)
}

func TestFetchCallerCancelAborts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher("").Fetch(ctx, srv.Client(), BuildCandidateURLs(srv.URL), "sk", 5*time.Second)

	require.Error(t, err)
	assert.Equal(t, cErr.UPSTREAM_REQUEST_FAILED, cErr.From(err).ErrorCode())
	assert.Equal(t, int32(0), hits.Load())
}

func TestFetchNoCandidates(t *testing.T) {
	_, err := newTestFetcher("").Fetch(context.Background(), http.DefaultClient, nil, "sk", time.Second)

	require.Error(t, err)
	assert.Equal(t, cErr.FETCH_FAILED, cErr.From(err).ErrorCode())
}

func TestFetchDecodesBrotliBody(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	_, err := bw.Write([]byte(`{"data":[{"id":"gpt-4o","owned_by":"openai"}]}`))
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	result, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), []string{srv.URL + "/v1/models"}, "sk", 5*time.Second)

	require.NoError(t, err)
	require.Len(t, result.Models, 1)
	assert.Equal(t, "gpt-4o", result.Models[0].ID)
	require.NotNil(t, result.Models[0].OwnedBy)
	assert.Equal(t, "openai", *result.Models[0].OwnedBy)
}

func serveEncoded(encoding string, body []byte) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if encoding != "" {
			w.Header().Set("Content-Encoding", encoding)
		}
		_, _ = w.Write(body)
	}))
}

func zstdEncode(t *testing.T, plain []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(plain, nil)
}

func TestFetchDecodesZstdBody(t *testing.T) {
	srv := serveEncoded("zstd", zstdEncode(t, []byte(`{"data":[{"id":"o3"}]}`)))
	defer srv.Close()

	result, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), []string{srv.URL + "/v1/models"}, "sk", 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t, []string{"o3"}, result.IDs())
}

func TestFetchRejectsZstdBomb(t *testing.T) {
	payload := zstdEncode(t, bytes.Repeat([]byte("a"), 3*core.MaxUpstreamBodyBytes))
	require.Less(t, len(payload), 64<<10)
	srv := serveEncoded("zstd", payload)
	defer srv.Close()

	_, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), []string{srv.URL + "/v1/models"}, "sk", 10*time.Second)

	require.Error(t, err)
	e := cErr.From(err)
	assert.Equal(t, cErr.UPSTREAM_PARSE_FAILED, e.ErrorCode())
	assert.Contains(t, e.ErrorDesc(), "exceeds")
}

func TestReadBodyCapsDecodedSize(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"zstd"}},
		Body:   io.NopCloser(bytes.NewReader(zstdEncode(t, bytes.Repeat([]byte("a"), 3*core.MaxUpstreamBodyBytes)))),
	}

	body, encoding, err := readBody(resp)

	require.Error(t, err)
	assert.Equal(t, "zstd", encoding)
	assert.LessOrEqual(t, len(body), core.MaxUpstreamBodyBytes)
}

func TestFetchRejectsOversizedGzipBody(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(bytes.Repeat([]byte("a"), 3*core.MaxUpstreamBodyBytes))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	srv := serveEncoded("gzip", buf.Bytes())
	defer srv.Close()

	_, err = newTestFetcher("").Fetch(context.Background(), srv.Client(), []string{srv.URL + "/v1/models"}, "sk", 10*time.Second)

	require.Error(t, err)
	e := cErr.From(err)
	assert.Equal(t, cErr.UPSTREAM_PARSE_FAILED, e.ErrorCode())
	assert.Equal(t, ErrBodyTooLarge.Error(), e.ErrorDesc())
}

func TestFetchRejectsOversizedPlainBody(t *testing.T) {
	srv := serveEncoded("", bytes.Repeat([]byte(" "), core.MaxUpstreamBodyBytes+1))
	defer srv.Close()

	_, err := newTestFetcher("").Fetch(context.Background(), srv.Client(), []string{srv.URL + "/v1/models"}, "sk", 10*time.Second)

	require.Error(t, err)
	assert.Equal(t, ErrBodyTooLarge.Error(), cErr.From(err).ErrorDesc())
}

func TestShouldFallback(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		isLast  bool
		want    bool
	}{
		{"transport not last", Outcome{Kind: OutcomeTransportFailure}, false, true},
		{"transport last", Outcome{Kind: OutcomeTransportFailure}, true, false},
		{"404 not last", Outcome{Kind: OutcomeHTTPFailure, Status: 404}, false, true},
		{"405 not last", Outcome{Kind: OutcomeHTTPFailure, Status: 405}, false, true},
		{"404 last", Outcome{Kind: OutcomeHTTPFailure, Status: 404}, true, false},
		{"401", Outcome{Kind: OutcomeHTTPFailure, Status: 401}, false, false},
		{"429", Outcome{Kind: OutcomeHTTPFailure, Status: 429}, false, false},
		{"500", Outcome{Kind: OutcomeHTTPFailure, Status: 500}, false, false},
		{"success", Outcome{Kind: OutcomeSuccess, Status: 200}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldFallback(tt.outcome, tt.isLast))
		})
	}
}

func TestResolveTimeout(t *testing.T) {
	ptr := func(v int) *int { return &v }

	assert.Equal(t, 15*time.Second, ResolveTimeout(nil))
	assert.Equal(t, 5*time.Second, ResolveTimeout(ptr(1)))
	assert.Equal(t, 5*time.Second, ResolveTimeout(ptr(-3)))
	assert.Equal(t, 30*time.Second, ResolveTimeout(ptr(30)))
	assert.Equal(t, 120*time.Second, ResolveTimeout(ptr(999)))
}
