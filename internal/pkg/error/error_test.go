package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromKeepsApplicationError(t *testing.T) {
	src := UpstreamAuthFailed("authentication failed")
	wrapped := fmt.Errorf("fetch: %w", src)

	got := From(wrapped)
	assert.Same(t, src, got)
	assert.Equal(t, http.StatusBadGateway, got.HttpCode())
	assert.Equal(t, UPSTREAM_AUTH_FAILED, got.ErrorCode())
}

func TestFromWrapsUnknownError(t *testing.T) {
	got := From(errors.New("boom"))
	assert.Equal(t, INTERNAL_ERROR, got.ErrorCode())
	assert.Equal(t, "boom", got.ErrorDesc())
}

func TestErrorsIsComparesCode(t *testing.T) {
	assert.True(t, errors.Is(UpstreamTimeout("a"), UpstreamTimeout("b")))
	assert.False(t, errors.Is(UpstreamTimeout("a"), UpstreamRequestFailed("a")))
}

func TestMapHttpStatusToError(t *testing.T) {
	assert.Equal(t, RATE_LIMIT_EXCEEDED, MapHttpStatusToError(http.StatusTooManyRequests, "x").ErrorCode())
	assert.Equal(t, INTERNAL_ERROR, MapHttpStatusToError(http.StatusTeapot, "x").ErrorCode())
}
