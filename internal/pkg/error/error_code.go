package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 40099: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY    = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS  = 40001 // 400 - 無效的請求參數
	BAD_REQUEST_HEADERS = 40002 // 400 - 無效的請求標頭
	INVALID_INPUT       = 40010 // 400 - Base URL / API Key 等輸入不合法

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED  = 40100 // 401 - 未授權
	INVALID_TOKEN = 40101 // 401 - JWT 無效或過期
	FORBIDDEN     = 40301 // 403 - 禁止訪問

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND          = 40400 // 404 - 資源未找到
	PROVIDER_NOT_FOUND = 40410 // 404 - 供應商不存在
	CONFLICT           = 40900 // 409 - 資源已存在

	// 42900 ~ 42999: 流量限制錯誤 (429 系列)
	RATE_LIMIT_EXCEEDED   = 42900 // 429 - 本服務速率限制
	UPSTREAM_RATE_LIMITED = 42910 // 429 - 上游回應 429

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	DATABASE_ERROR      = 50001 // 500 - 資料庫錯誤
	SERVICE_UNAVAILABLE = 50002 // 503 - 服務暫停 (維護模式)

	// 50200 ~ 50499: 外部請求錯誤 (502 504 系列)
	EXTERNAL_REQUEST_ERROR         = 50200 // 502 - 外部 API 請求錯誤
	EXTERNAL_RESPONSE_FORMAT_ERROR = 50201 // 502 - 外部 API 回應格式錯誤
	UPSTREAM_AUTH_FAILED           = 50210 // 502 - 上游 401/403
	UPSTREAM_ENDPOINT_MISMATCH     = 50211 // 502 - 上游 404/405，非 OpenAI 相容
	UPSTREAM_REQUEST_FAILED        = 50212 // 502 - 連線失敗（非逾時）
	UPSTREAM_PARSE_FAILED          = 50213 // 502 - 2xx 但 body 無法解析
	FETCH_FAILED                   = 50214 // 502 - 其他 HTTP 狀態或無候選網址
	GATEWAY_TIMEOUT                = 50400 // 504 - 外部 API 一般逾時
	UPSTREAM_TIMEOUT               = 50410 // 504 - 抓取模型逾時
)
