package command

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"modelfetch/internal/core"
	"modelfetch/internal/pkg/auth"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/service"
	"modelfetch/internal/service/models"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	params service.FetchParams
	result *models.FetchResult
	err    error
}

func (f *fakeFetcher) FetchOpenAIModels(_ context.Context, params service.FetchParams) (*models.FetchResult, error) {
	f.params = params
	return f.result, f.err
}

func newFetchCmd(t *testing.T, handler *FetchHandler, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "fetch", RunE: handler.Fetch}
	BindFetchFlags(cmd)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	return cmd, stdout, stderr
}

func TestFetchPrintsResultAsJSON(t *testing.T) {
	fetcher := &fakeFetcher{result: &models.FetchResult{
		Models:      []models.ModelDescriptor{{ID: "gpt-4o"}, {ID: "gpt-4o-mini"}},
		ResolvedURL: "https://api.example.com/models",
		ElapsedMs:   12,
		Warnings:    []string{"https://api.example.com/v1/models returned HTTP 404, trying fallback URL"},
	}}
	handler := &FetchHandler{logger: zap.NewNop(), fetcher: fetcher}
	cmd, stdout, stderr := newFetchCmd(t, handler,
		"--base-url", "https://api.example.com",
		"--api-key", "sk-test",
		"--app-type", "Claude",
	)

	require.NoError(t, cmd.Execute())

	assert.Equal(t, core.AppTypeClaude, fetcher.params.AppType)
	assert.Equal(t, service.TriggerCLI, fetcher.params.Trigger)
	assert.Nil(t, fetcher.params.TimeoutSecs)
	assert.Len(t, fetcher.params.RequestID, 36)

	var printed models.FetchResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &printed))
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini"}, printed.IDs())
	assert.Equal(t, "https://api.example.com/models", printed.ResolvedURL)
	assert.Contains(t, stderr.String(), "warning:")
}

func TestFetchPassesExplicitTimeout(t *testing.T) {
	fetcher := &fakeFetcher{result: &models.FetchResult{Models: []models.ModelDescriptor{}}}
	handler := &FetchHandler{logger: zap.NewNop(), fetcher: fetcher}
	cmd, _, _ := newFetchCmd(t, handler, "--base-url", "https://x", "--api-key", "k", "--timeout", "30", "--app-type", "unknown")

	require.NoError(t, cmd.Execute())
	require.NotNil(t, fetcher.params.TimeoutSecs)
	assert.Equal(t, 30, *fetcher.params.TimeoutSecs)
	assert.Equal(t, core.AppTypeCodex, fetcher.params.AppType)
}

func TestFetchReturnsServiceError(t *testing.T) {
	fetcher := &fakeFetcher{err: cErr.InvalidInput("Base URL must not be empty")}
	handler := &FetchHandler{logger: zap.NewNop(), fetcher: fetcher}
	cmd, stdout, _ := newFetchCmd(t, handler)
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Base URL must not be empty")
	assert.Contains(t, err.Error(), "40010")
	assert.Empty(t, stdout.String())
}

func TestAdminTokenIssue(t *testing.T) {
	handler := &AdminTokenHandler{secretKey: "test-secret"}
	cmd := &cobra.Command{Use: "admin-token", RunE: handler.Issue, SilenceErrors: true}
	BindAdminTokenFlags(cmd)
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetArgs([]string{"--username", "ops", "--role", "readonly", "--ttl", "1h"})

	require.NoError(t, cmd.Execute())

	claims, err := auth.ParseAdminToken("test-secret", strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Username)
	assert.Equal(t, core.RoleReadOnly, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAdminTokenRejectsBadInput(t *testing.T) {
	cases := map[string][]string{
		"unknown role": {"--role", "root"},
		"zero ttl":     {"--ttl", "0s"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			handler := &AdminTokenHandler{secretKey: "test-secret"}
			cmd := &cobra.Command{Use: "admin-token", RunE: handler.Issue, SilenceErrors: true, SilenceUsage: true}
			BindAdminTokenFlags(cmd)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(args)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestStandaloneStoreHasNoProviders(t *testing.T) {
	store := NewStandaloneStore()
	provider, err := store.Get(context.Background(), core.AppTypeCodex, "p1")
	assert.NoError(t, err)
	assert.Nil(t, provider)

	cached, err := store.Load(context.Background(), core.AppTypeCodex, "p1")
	assert.NoError(t, err)
	assert.Nil(t, cached)
}
