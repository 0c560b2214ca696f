package validate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDto struct {
	BaseURL string `json:"baseUrl" binding:"required"`
	APIKey  string `json:"apiKey" binding:"required"`
}

type sampleWithMessages struct {
	BaseURL string `json:"baseUrl" binding:"required"`
}

func (sampleWithMessages) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{"BaseURL.required": "baseUrl is required"}
}

func newJSONContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindAndValidateFormatsFieldErrors(t *testing.T) {
	var req sampleDto
	cause, respErr := BindAndValidate(newJSONContext(`{"baseUrl":"https://api.example.com"}`), &req)

	require.Error(t, cause)
	desc := cErr.From(respErr).ErrorDesc()
	assert.Contains(t, desc, `Field "apiKey" (type: string) failed the 'required' validation`)
}

func TestBindAndValidateUsesCustomMessages(t *testing.T) {
	var req sampleWithMessages
	cause, respErr := BindAndValidate(newJSONContext(`{}`), &req)

	require.Error(t, cause)
	assert.Equal(t, "baseUrl is required", cErr.From(respErr).ErrorDesc())
}

type partialMessages struct {
	BaseURL string `json:"baseUrl" binding:"required"`
	APIKey  string `json:"apiKey" binding:"required"`
}

func (partialMessages) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{"BaseURL.required": "baseUrl is required"}
}

func TestBindAndValidateFormatsFieldWithoutCustomMessage(t *testing.T) {
	var req partialMessages
	cause, respErr := BindAndValidate(newJSONContext(`{"baseUrl":"https://api.example.com"}`), &req)

	require.Error(t, cause)
	assert.Contains(t, cErr.From(respErr).ErrorDesc(), `Field "apiKey" (type: string) failed the 'required' validation`)
}

func TestBindAndValidateOK(t *testing.T) {
	var req sampleDto
	cause, respErr := BindAndValidate(newJSONContext(`{"baseUrl":"x","apiKey":"y"}`), &req)
	assert.NoError(t, cause)
	assert.NoError(t, respErr)
	assert.Equal(t, "y", req.APIKey)
}

func TestParseAppType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "appType", Value: "codex"}}

	appType, err := ParseAppType(c, "appType")
	require.NoError(t, err)
	assert.Equal(t, "codex", string(appType))

	c.Params = gin.Params{{Key: "appType", Value: "cursor"}}
	_, err = ParseAppType(c, "appType")
	require.Error(t, err)

	assert.True(t, IsValidAppType("gemini"))
	assert.False(t, IsValidAppType(""))
}
