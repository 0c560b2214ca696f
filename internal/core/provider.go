package core

// AppType 對應供應商設定所屬的客戶端
type AppType string

const (
	AppTypeClaude AppType = "claude"
	AppTypeCodex  AppType = "codex"
	AppTypeGemini AppType = "gemini"
)

var AppTypes = []AppType{AppTypeClaude, AppTypeCodex, AppTypeGemini}

func (a AppType) Valid() bool {
	for _, t := range AppTypes {
		if a == t {
			return true
		}
	}
	return false
}

// OpenAI 相容端點路徑
type OpenAIEndpoint string

const (
	OpenAIVersionPrefix  OpenAIEndpoint = "/v1"
	OpenAIModelsEndpoint OpenAIEndpoint = "/models"
)

// 單次抓取逾時（秒）
const (
	FetchTimeoutDefaultSecs = 15
	FetchTimeoutMinSecs     = 5
	FetchTimeoutMaxSecs     = 120
)

// 錯誤訊息附帶上游 body 的最大字元數
const ErrorTailMaxChars = 180

// 讀取上游 body 的上限
const MaxUpstreamBodyBytes = 10 << 20

// 抓取結果分類（metric label / log）
type FetchOutcome string

const (
	FetchOutcomeSuccess          FetchOutcome = "success"
	FetchOutcomeInvalidInput     FetchOutcome = "invalid_input"
	FetchOutcomeNotFound         FetchOutcome = "not_found"
	FetchOutcomeAuthFailure      FetchOutcome = "auth_failure"
	FetchOutcomeEndpointMismatch FetchOutcome = "endpoint_mismatch"
	FetchOutcomeRateLimited      FetchOutcome = "rate_limited"
	FetchOutcomeTimeout          FetchOutcome = "timeout"
	FetchOutcomeTransport        FetchOutcome = "transport"
	FetchOutcomeParseFailure     FetchOutcome = "parse_failure"
	FetchOutcomeFailed           FetchOutcome = "failed"
)
