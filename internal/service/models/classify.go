package models

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"unicode/utf8"

	"modelfetch/internal/core"
	cErr "modelfetch/internal/pkg/error"
)

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// ClassifyHTTPError 把非 2xx 狀態碼轉成使用者看得懂的錯誤，並附上 body 摘要
func ClassifyHTTPError(status int, body string) *cErr.Error {
	tail := compactErrorTail(body)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return cErr.UpstreamAuthFailed(fmt.Sprintf("authentication failed, please check the API key (HTTP %d)%s", status, tail))
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return cErr.UpstreamEndpointMismatch(fmt.Sprintf("models endpoint not found, make sure the endpoint is OpenAI-compatible (HTTP %d)%s", status, tail))
	case http.StatusTooManyRequests:
		return cErr.UpstreamRateLimited(fmt.Sprintf("too many requests, please retry later (HTTP %d)%s", status, tail))
	default:
		return cErr.FetchFailed(fmt.Sprintf("fetch models failed (HTTP %d)%s", status, tail))
	}
}

// ClassifyTransportError 逾時與其他連線錯誤分開處理
func ClassifyTransportError(err error) *cErr.Error {
	if isTimeout(err) {
		return cErr.UpstreamTimeout("request timed out, please check the network or proxy configuration")
	}
	return cErr.UpstreamRequestFailed(fmt.Sprintf("request failed: %v", err))
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// compactErrorTail 回傳 ": <摘要>"；body 為空時回傳空字串
func compactErrorTail(body string) string {
	text := strings.TrimSpace(newlineReplacer.Replace(strings.TrimSpace(body)))
	if text == "" {
		return ""
	}
	if utf8.RuneCountInString(text) > core.ErrorTailMaxChars {
		runes := []rune(text)
		text = string(runes[:core.ErrorTailMaxChars]) + "..."
	}
	return ": " + text
}
