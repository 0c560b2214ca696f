package models

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/telemetry"

	"go.uber.org/zap"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeTransportFailure
	OutcomeHTTPFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeHTTPFailure:
		return "http_failure"
	default:
		return "unknown"
	}
}

// Outcome 單一候選網址的嘗試結果
type Outcome struct {
	Kind   OutcomeKind
	Status int
	// 成功時為解壓後的 body；HTTP 失敗時為錯誤內容
	Body []byte
	// 連線錯誤，或 2xx 但 body 讀取失敗
	Err error
}

func (o Outcome) fallbackReason() string {
	if o.Kind == OutcomeTransportFailure {
		return "transport"
	}
	return fmt.Sprintf("http_%d", o.Status)
}

// ShouldFallback 只有在不是最後一個候選時，連線錯誤與 404/405 才換下一個網址
func ShouldFallback(o Outcome, isLast bool) bool {
	if isLast {
		return false
	}
	switch o.Kind {
	case OutcomeTransportFailure:
		return true
	case OutcomeHTTPFailure:
		return o.Status == http.StatusNotFound || o.Status == http.StatusMethodNotAllowed
	default:
		return false
	}
}

func fallbackWarning(url string, o Outcome) string {
	if o.Kind == OutcomeTransportFailure {
		return fmt.Sprintf("request to %s failed, trying fallback URL", url)
	}
	return fmt.Sprintf("%s returned HTTP %d, trying fallback URL", url, o.Status)
}

type Fetcher struct {
	trace     *telemetry.Trace
	metric    *telemetry.Metric
	logger    *zap.Logger
	userAgent string
}

func NewFetcher(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logger *zap.Logger,
	conf *config.Configuration,
) *Fetcher {
	f := &Fetcher{trace: trace, metric: metric, logger: logger}
	if conf != nil {
		f.userAgent = conf.Fetch.UserAgent
	}
	return f
}

// Fetch 依序嘗試 candidates，第一個成功的回應即為結果。
// 每次嘗試各自套用 timeout；呼叫端取消 ctx 時立即停止，不再換網址。
func (f *Fetcher) Fetch(
	ctx context.Context,
	client HTTPDoer,
	candidates []string,
	apiKey string,
	timeout time.Duration,
) (_ *FetchResult, returnedError error) {
	ctx, span, end := f.trace.WithSpan(ctx, string(core.SpanModelsFetch))
	defer func() { end(returnedError) }()

	start := time.Now()
	var (
		warnings []string
		lastErr  error
	)

	for i, url := range candidates {
		isLast := i == len(candidates)-1
		outcome := f.attempt(ctx, client, url, apiKey, timeout, i, isLast)

		switch outcome.Kind {
		case OutcomeSuccess:
			if errors.Is(outcome.Err, ErrBodyTooLarge) {
				return nil, cErr.UpstreamParseFailed(outcome.Err.Error())
			}
			if outcome.Err != nil {
				return nil, cErr.UpstreamParseFailed(fmt.Sprintf("failed to read models response: %v", outcome.Err))
			}
			models, err := ParseModels(outcome.Body)
			if err != nil {
				return nil, err
			}
			result := &FetchResult{
				Models:      models,
				ResolvedURL: url,
				ElapsedMs:   uint64(time.Since(start).Milliseconds()),
				Warnings:    warnings,
			}
			f.trace.ApplyTraceAttributes(span, core.TraceModelFetchMeta{
				Candidates:   candidates,
				TimeoutSec:   timeout.Seconds(),
				ResolvedURL:  url,
				ModelCount:   len(models),
				WarningCount: len(warnings),
				ElapsedMs:    result.ElapsedMs,
			})
			return result, nil

		case OutcomeTransportFailure:
			lastErr = ClassifyTransportError(outcome.Err)
			if ctx.Err() != nil {
				return nil, lastErr
			}
		}

		if !ShouldFallback(outcome, isLast) {
			if outcome.Kind == OutcomeHTTPFailure {
				return nil, ClassifyHTTPError(outcome.Status, string(outcome.Body))
			}
			return nil, lastErr
		}

		warning := fallbackWarning(url, outcome)
		warnings = append(warnings, warning)
		f.metric.IncFallback(outcome.fallbackReason())
		f.logger.Warn("models endpoint fallback",
			zap.String("url", url),
			zap.Int("status", outcome.Status),
			zap.String("outcome", outcome.Kind.String()),
			zap.Error(outcome.Err),
		)
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, cErr.FetchFailed("fetch models failed")
}

func (f *Fetcher) attempt(
	ctx context.Context,
	client HTTPDoer,
	url string,
	apiKey string,
	timeout time.Duration,
	index int,
	isLast bool,
) (outcome Outcome) {
	ctx, span, end := f.trace.WithSpan(ctx, string(core.SpanModelsFetchAttempt))
	meta := core.TraceModelFetchAttemptMeta{URL: url, Index: index, IsLast: isLast}
	defer func() {
		meta.Outcome = outcome.Kind.String()
		meta.StatusCode = outcome.Status
		meta.Fallback = ShouldFallback(outcome, isLast)
		f.trace.ApplyTraceAttributes(span, meta)
		var spanErr error
		if outcome.Err != nil {
			spanErr = outcome.Err
		} else if outcome.Kind == OutcomeHTTPFailure {
			spanErr = fmt.Errorf("upstream returned HTTP %d", outcome.Status)
		}
		end(spanErr)
	}()

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Err: err}
	}
	defer resp.Body.Close()

	// body 必須在 attemptCtx 結束前讀完
	body, encoding, readErr := readBody(resp)
	meta.ContentEncoding = encoding
	meta.BodyBytes = len(body)

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return Outcome{Kind: OutcomeSuccess, Status: resp.StatusCode, Body: body, Err: readErr}
	}
	return Outcome{Kind: OutcomeHTTPFailure, Status: resp.StatusCode, Body: body}
}
