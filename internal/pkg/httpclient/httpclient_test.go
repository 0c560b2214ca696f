package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"modelfetch/config"
	cErr "modelfetch/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestForProxyWithoutURLReturnsDefault(t *testing.T) {
	f := NewFactory(zap.NewNop(), &config.Configuration{})

	client, err := f.ForProxy(nil)
	require.NoError(t, err)
	assert.Same(t, f.Default(), client)

	client, err = f.ForProxy(&Proxy{URL: "  "})
	require.NoError(t, err)
	assert.Same(t, f.Default(), client)
}

func TestForProxyCachesPerURL(t *testing.T) {
	f := NewFactory(zap.NewNop(), nil)

	a, err := f.ForProxy(&Proxy{URL: "http://127.0.0.1:8888"})
	require.NoError(t, err)
	b, err := f.ForProxy(&Proxy{URL: "http://127.0.0.1:8888"})
	require.NoError(t, err)
	c, err := f.ForProxy(&Proxy{URL: "socks5://127.0.0.1:1080"})
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.NotSame(t, f.Default(), a)
}

func TestParseProxyURL(t *testing.T) {
	u, err := ParseProxyURL(&Proxy{URL: "http://old:pw@proxy.local:3128", Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "s3cret", pw)

	for _, raw := range []string{"ftp://proxy.local", "proxy.local:3128", "http://", "://bad"} {
		_, err := ParseProxyURL(&Proxy{URL: raw})
		require.Error(t, err, raw)
		assert.Equal(t, cErr.INVALID_INPUT, cErr.From(err).ErrorCode(), raw)
	}
}

func TestProxiedClientRoutesThroughProxy(t *testing.T) {
	hosts := make(chan string, 1)
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hosts <- r.Host
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer proxy.Close()

	f := NewFactory(zap.NewNop(), nil)
	client, err := f.ForProxy(&Proxy{URL: proxy.URL})
	require.NoError(t, err)

	resp, err := client.Get("http://upstream.invalid/v1/models")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "upstream.invalid", <-hosts)
}
