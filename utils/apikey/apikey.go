package apikey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

const maskVisibleChars = 4

// Mask 只保留前後各 4 字元，給 log 與管理 API 顯示
func Mask(apiKey string) string {
	apiKey = strings.TrimSpace(apiKey)
	n := utf8.RuneCountInString(apiKey)
	if n == 0 {
		return ""
	}
	if n <= maskVisibleChars*2 {
		return strings.Repeat("*", n)
	}
	runes := []rune(apiKey)
	return string(runes[:maskVisibleChars]) + "..." + string(runes[n-maskVisibleChars:])
}

// Fingerprint HMAC-SHA256(secret, key) 取前 16 個 hex 字元，用來串接同一把 key 的紀錄
func Fingerprint(apiKey, secret string) string {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(apiKey))
	return hex.EncodeToString(mac.Sum(nil))[:16]
}
