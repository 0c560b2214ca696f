package response

import (
	"net/http"

	cErr "modelfetch/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// handler 與 Response middleware 之間以 gin context 傳遞的 key
const (
	ContextDataKey        = "data"
	ContextMessageKey     = "message"
	ContextPassthroughKey = "passthrough_raw"

	defaultMessage = "Request Success"
)

type Response struct {
	RequestID   string `json:"requestID"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

func setPayload(c *gin.Context, data any, message string) {
	if msg, ok := data.(gin.H); ok {
		if s, ok := msg["message"].(string); ok && s != "" {
			message = s
			delete(msg, "message")
		}
	}
	c.Set(ContextDataKey, data)
	c.Set(ContextMessageKey, message)
	c.Abort()
}

// Payload 取出 handler 設定的資料與訊息；沒有資料時回傳空物件
func Payload(c *gin.Context) (any, string) {
	data, _ := c.Get(ContextDataKey)
	if data == nil {
		data = map[string]any{}
	}
	message := defaultMessage
	if s, ok := c.Get(ContextMessageKey); ok {
		if v, _ := s.(string); v != "" {
			message = v
		}
	}
	return data, message
}

// IsPassthrough handler 是否已用 Raw 自行輸出
func IsPassthrough(c *gin.Context) bool {
	v, _ := c.Get(ContextPassthroughKey)
	b, _ := v.(bool)
	return b
}

func Create(c *gin.Context, data any) {
	c.Status(http.StatusCreated)
	setPayload(c, data, "Create Success")
}

func Success(c *gin.Context, data any) {
	setPayload(c, data, defaultMessage)
}

// Raw 直接輸出，不經 Response middleware 包裝（OpenAI 相容格式使用）
func Raw(c *gin.Context, httpCode int, data any) {
	c.Set(ContextPassthroughKey, true)
	c.JSON(httpCode, data)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, msg string, desc string) {
	c.JSON(httpCode, Response{
		RequestID:   requestID,
		Code:        errorCode,
		Data:        nil,
		Message:     msg,
		Description: desc,
	})
	c.Abort()
}

func FailByErr(c *gin.Context, requestID string, err error) {
	if v, ok := err.(*cErr.Error); ok {
		Fail(c, requestID, v.HttpCode(), v.ErrorCode(), v.Error(), v.ErrorDesc())
		return
	}
	Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, err.Error(), "internal error")
}
