package request

import (
	"errors"
	"regexp"

	cErr "modelfetch/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

// Validator 由 DTO 實作，提供「欄位.規則」對應的錯誤訊息
type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

var reg = regexp.MustCompile(`\[\d+\]`)

// GetError 回傳 DTO 自訂的第一個驗證錯誤訊息；沒有對應的自訂訊息時 ok 為 false，由呼叫端自行格式化
func GetError(request any, err error) (*cErr.Error, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}
	custom, isValidator := request.(Validator)
	if !isValidator {
		return nil, false
	}
	messages := custom.GetMessages()
	for _, v := range validationErrors {
		field := reg.ReplaceAllString(v.Field(), ".*")
		if message, exist := messages[field+"."+v.Tag()]; exist {
			return cErr.ValidateErr(message), true
		}
	}
	return nil, false
}
