package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"modelfetch/config"
	cErr "modelfetch/internal/pkg/error"

	"github.com/google/wire"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewFactory)

const (
	defaultMaxIdleConns        = 100
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
	defaultDialTimeout         = 10 * time.Second
	defaultKeepAlive           = 30 * time.Second
)

// Proxy 單一供應商的出站代理設定
type Proxy struct {
	URL      string
	Username string
	Password string
}

// Factory 依代理設定提供共用的 *http.Client，同一組代理只建立一次 Transport
type Factory struct {
	logger          *zap.Logger
	maxIdleConns    int
	idleConnTimeout time.Duration
	direct          *http.Client
	clients         *xsync.Map[string, *http.Client]
}

func NewFactory(logger *zap.Logger, conf *config.Configuration) *Factory {
	f := &Factory{
		logger:          logger,
		maxIdleConns:    defaultMaxIdleConns,
		idleConnTimeout: defaultIdleConnTimeout,
		clients:         xsync.NewMap[string, *http.Client](),
	}
	if conf != nil {
		if conf.Fetch.MaxIdleConns > 0 {
			f.maxIdleConns = conf.Fetch.MaxIdleConns
		}
		if conf.Fetch.IdleConnTimeoutSeconds > 0 {
			f.idleConnTimeout = time.Duration(conf.Fetch.IdleConnTimeoutSeconds) * time.Second
		}
	}
	f.direct = &http.Client{Transport: f.newTransport(nil)}
	return f
}

// Default 不經代理的 client
func (f *Factory) Default() *http.Client {
	return f.direct
}

// ForProxy proxy 為 nil 或 URL 為空時回傳 Default()。
// 支援 http / https / socks5 / socks5h。
func (f *Factory) ForProxy(proxy *Proxy) (*http.Client, error) {
	if proxy == nil || strings.TrimSpace(proxy.URL) == "" {
		return f.direct, nil
	}

	proxyURL, err := ParseProxyURL(proxy)
	if err != nil {
		return nil, err
	}

	key := proxyURL.String()
	client, loaded := f.clients.LoadOrCompute(key, func() (*http.Client, bool) {
		return &http.Client{Transport: f.newTransport(proxyURL)}, false
	})
	if !loaded {
		f.logger.Info("created proxied http client",
			zap.String("scheme", proxyURL.Scheme),
			zap.String("host", proxyURL.Host),
		)
	}
	return client, nil
}

// ParseProxyURL 驗證代理網址；帳密若另外提供則覆蓋 URL 內的 userinfo
func ParseProxyURL(proxy *Proxy) (*url.URL, error) {
	raw := strings.TrimSpace(proxy.URL)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, cErr.InvalidInput(fmt.Sprintf("invalid proxy URL: %v", err))
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, cErr.InvalidInput(fmt.Sprintf("unsupported proxy scheme %q", u.Scheme))
	}
	if u.Host == "" {
		return nil, cErr.InvalidInput("proxy URL must include a host")
	}
	if proxy.Username != "" {
		u.User = url.UserPassword(proxy.Username, proxy.Password)
	}
	return u, nil
}

func (f *Factory) newTransport(proxyURL *url.URL) *http.Transport {
	transport := &http.Transport{
		MaxIdleConns:        f.maxIdleConns,
		MaxIdleConnsPerHost: f.maxIdleConns,
		IdleConnTimeout:     f.idleConnTimeout,
		TLSHandshakeTimeout: defaultTLSHandshakeTimeout,
		// 壓縮由呼叫端自行解碼（含 br / zstd）
		DisableCompression: true,
		ForceAttemptHTTP2:  true,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{
				Timeout:   defaultDialTimeout,
				KeepAlive: defaultKeepAlive,
			}
			return dialer.DialContext(ctx, network, addr)
		},
	}
	if proxyURL != nil {
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return transport
}
