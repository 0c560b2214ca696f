package telemetry

import (
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ProviderSet = wire.NewSet(NewMetric, NewTrace)

// Metric 關閉時所有欄位為 nil，呼叫端透過 helper 方法操作即可
type Metric struct {
	HttpRequestsTotal       *prometheus.CounterVec
	HttpRequestDuration     *prometheus.HistogramVec
	ModelFetchTotal         *prometheus.CounterVec
	ModelFetchDuration      *prometheus.HistogramVec
	ModelFetchFallbackTotal *prometheus.CounterVec
	RateLimitedTotal        *prometheus.CounterVec
	config                  *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	name := func(m core.MetricName) string {
		return config.App.Name + "_" + string(m)
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name(core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ModelFetchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricModelFetchTotal),
				Help: "Upstream model list fetches by outcome",
			},
			labelNames(core.MetricLabelAppType, core.MetricLabelOutcome),
		),
		ModelFetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name(core.MetricModelFetchDuration),
				Help:    "Upstream model list fetch duration including fallbacks (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelAppType),
		),
		ModelFetchFallbackTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricModelFetchFallbackTotal),
				Help: "Candidate URLs skipped in favour of the next one",
			},
			labelNames(core.MetricLabelReason),
		),
		RateLimitedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: name(core.MetricRateLimitTotal),
				Help: "Requests rejected by the local rate limiter",
			},
			labelNames(core.MetricLabelEndpoint),
		),
	}
}

func (m *Metric) ObserveRequest(endpoint, status string, d time.Duration) {
	if m == nil || m.HttpRequestsTotal == nil || m.HttpRequestDuration == nil {
		return
	}
	m.HttpRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.HttpRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metric) ObserveFetch(appType core.AppType, outcome core.FetchOutcome, d time.Duration) {
	if m == nil || m.ModelFetchTotal == nil || m.ModelFetchDuration == nil {
		return
	}
	m.ModelFetchTotal.WithLabelValues(string(appType), string(outcome)).Inc()
	m.ModelFetchDuration.WithLabelValues(string(appType)).Observe(d.Seconds())
}

func (m *Metric) IncFallback(reason string) {
	if m == nil || m.ModelFetchFallbackTotal == nil {
		return
	}
	m.ModelFetchFallbackTotal.WithLabelValues(reason).Inc()
}

func (m *Metric) IncRateLimited(endpoint string) {
	if m == nil || m.RateLimitedTotal == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(endpoint).Inc()
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
