package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"modelfetch/internal/core"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/service"
	"modelfetch/internal/service/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ModelFetcher interface {
	FetchOpenAIModels(ctx context.Context, params service.FetchParams) (*models.FetchResult, error)
}

type FetchHandler struct {
	logger  *zap.Logger
	fetcher ModelFetcher
}

func NewFetchHandler(logger *zap.Logger, modelFetchService *service.ModelFetchService) *FetchHandler {
	return &FetchHandler{logger: logger, fetcher: modelFetchService}
}

// BindFetchFlags 註冊 fetch 子命令的參數
func BindFetchFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-url", "", "OpenAI-compatible base URL, e.g. https://api.example.com")
	cmd.Flags().String("api-key", "", "API key sent as Bearer token")
	cmd.Flags().String("app-type", string(core.AppTypeCodex), "claude / codex / gemini")
	cmd.Flags().Int("timeout", core.FetchTimeoutDefaultSecs, "per-request timeout in seconds")
}

// Fetch 抓一次模型清單，把結果以 JSON 印到 stdout
func (handler *FetchHandler) Fetch(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("base-url")
	apiKey, _ := cmd.Flags().GetString("api-key")
	appType, _ := cmd.Flags().GetString("app-type")

	params := service.FetchParams{
		AppType:   core.AppType(strings.ToLower(strings.TrimSpace(appType))),
		BaseURL:   baseURL,
		APIKey:    apiKey,
		Trigger:   service.TriggerCLI,
		RequestID: uuid.NewString(),
	}
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetInt("timeout")
		params.TimeoutSecs = &timeout
	}
	if !params.AppType.Valid() {
		params.AppType = core.AppTypeCodex
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := handler.fetcher.FetchOpenAIModels(ctx, params)
	if err != nil {
		var e *cErr.Error
		if errors.As(err, &e) {
			return fmt.Errorf("%s (%d): %s", e.Error(), e.ErrorCode(), e.ErrorDesc())
		}
		return err
	}

	for _, warning := range result.Warnings {
		cmd.PrintErrln("warning:", warning)
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
