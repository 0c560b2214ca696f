package validate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"modelfetch/internal/core"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 輸出格式化的 validator error（欄位 json 名/型別/規則列表）
func ValidationErrorResponse(obj interface{}, err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var b strings.Builder
		b.WriteString("Validation error:\n")
		for _, fe := range errs {
			field := jsonFieldName(obj, fe.StructField())
			ftype := fieldType(obj, fe.StructField())
			format := getFieldFormat(obj, fe.StructField())
			b.WriteString(fmt.Sprintf(" - Field \"%s\" (type: %s) failed the '%s' validation (rules: %v)\n",
				field, ftype, fe.Tag(), format))
		}
		return b.String()
	}
	return fmt.Sprintf("Validation error: %s", err.Error())
}

func structType(obj interface{}) reflect.Type {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func jsonFieldName(obj interface{}, structField string) string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		if tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0]
		}
	}
	return structField
}

func fieldType(obj interface{}, structField string) string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		return f.Type.String()
	}
	return ""
}

func getFieldFormat(obj interface{}, structField string) []string {
	if f, ok := structType(obj).FieldByName(structField); ok {
		tag := f.Tag.Get("binding")
		if tag != "" {
			return strings.Split(tag, ",")
		}
	}
	return nil
}

// BindAndValidate DTO 有自訂訊息（request.Validator）時優先使用
func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		if custom, ok := request.GetError(req, err); ok {
			return err, custom
		}
		return err, cErr.ValidateErr(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

// BindQueryAndValidate 同 BindAndValidate，來源為 query string
func BindQueryAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindQuery(req); err != nil {
		if custom, ok := request.GetError(req, err); ok {
			return err, custom
		}
		return err, cErr.ValidatePathParamsErr(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

func GetInt64Query(c *gin.Context, key string, defaultVal int64) (int64, error) {
	if v := c.Query(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return n, nil
	}
	return defaultVal, nil
}

// ===== AppType =====
func IsValidAppType(appType string) bool {
	return core.AppType(appType).Valid()
}

// ParseAppType 從 path 參數取 appType
func ParseAppType(c *gin.Context, key string) (core.AppType, error) {
	raw := c.Param(key)
	if !IsValidAppType(raw) {
		return "", cErr.ValidatePathParamsErr(fmt.Sprintf("invalid %s %q", key, raw))
	}
	return core.AppType(raw), nil
}
