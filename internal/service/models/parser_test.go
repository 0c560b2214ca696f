package models

import (
	"testing"

	cErr "modelfetch/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelsDedupesAndSorts(t *testing.T) {
	body := []byte(`{"data":[{"id":"z"},{"id":"a"},{"id":"z","owned_by":"x"}]}`)

	got, err := ParseModels(body)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "z", got[1].ID)
	assert.Nil(t, got[1].OwnedBy, "first occurrence wins, later fields are not merged")
}

func TestParseModelsSkipsEntriesWithoutID(t *testing.T) {
	got, err := ParseModels([]byte(`{"data":[{"id":""},{"name":"invalid"},{"id":"   "},{"id":42},"oops",null]}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseModelsEmptyAndMissingData(t *testing.T) {
	got, err := ParseModels([]byte(`{"data":[]}`))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParseModels([]byte(`{"object":"list"}`))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseModelsTrimsIDsAndKeepsOptionalFields(t *testing.T) {
	body := []byte(`{"object":"list","data":[
		{"id":"  gpt-4o  ","object":"model","owned_by":"openai","created":1715367049},
		{"id":"gpt-4o","owned_by":"someone-else"},
		{"id":"claude-3","owned_by":null,"created":"yesterday"}
	]}`)

	got, err := ParseModels(body)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "claude-3", got[0].ID)
	assert.Nil(t, got[0].OwnedBy)
	assert.Nil(t, got[0].Created)

	assert.Equal(t, "gpt-4o", got[1].ID)
	require.NotNil(t, got[1].OwnedBy)
	assert.Equal(t, "openai", *got[1].OwnedBy)
	require.NotNil(t, got[1].Created)
	assert.Equal(t, int64(1715367049), *got[1].Created)
}

func TestParseModelsHardErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "html", body: `<html>gateway</html>`},
		{name: "empty body", body: ``},
		{name: "top level array", body: `[{"id":"a"}]`},
		{name: "top level null", body: `null`},
		{name: "data object", body: `{"data":{"id":"a"}}`},
		{name: "data null", body: `{"data":null}`},
		{name: "data string", body: `{"data":"a,b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModels([]byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, cErr.UPSTREAM_PARSE_FAILED, cErr.From(err).ErrorCode())
		})
	}
}

func TestParseModelsNonJSONMessage(t *testing.T) {
	_, err := ParseModels([]byte("not json"))
	require.Error(t, err)
	assert.Contains(t, cErr.From(err).ErrorDesc(), "non-JSON")
}
