package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	cErr "modelfetch/internal/pkg/error"
)

// ParseModels 解析 OpenAI 相容的 {"data":[...]} 回應。
// data 缺少視為空清單；data 不是陣列、或整體不是物件時回傳 ParseFailure。
// 個別項目沒有可用 id 時直接略過，重複 id 以第一筆為準，結果依 id 排序。
func ParseModels(body []byte) ([]ModelDescriptor, error) {
	if !json.Valid(body) {
		var probe any
		err := json.Unmarshal(body, &probe)
		return nil, cErr.UpstreamParseFailed(fmt.Sprintf("models endpoint returned non-JSON response: %v", err))
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return nil, cErr.UpstreamParseFailed(fmt.Sprintf("failed to parse models list: %s", describeShapeError(err, "expected a JSON object")))
	}

	rawData, ok := envelope["data"]
	if !ok {
		return []ModelDescriptor{}, nil
	}

	var items []json.RawMessage
	if trimmed := bytes.TrimSpace(rawData); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, cErr.UpstreamParseFailed("failed to parse models list: field \"data\" is not an array")
	}
	if err := json.Unmarshal(rawData, &items); err != nil {
		return nil, cErr.UpstreamParseFailed(fmt.Sprintf("failed to parse models list: %v", err))
	}

	seen := make(map[string]struct{}, len(items))
	models := make([]ModelDescriptor, 0, len(items))
	for _, raw := range items {
		model, ok := decodeItem(raw)
		if !ok {
			continue
		}
		if _, dup := seen[model.ID]; dup {
			continue
		}
		seen[model.ID] = struct{}{}
		models = append(models, model)
	}

	sort.SliceStable(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

// decodeItem 只取 id / owned_by / created，型別不符的選填欄位視為缺少
func decodeItem(raw json.RawMessage) (ModelDescriptor, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return ModelDescriptor{}, false
	}

	var id string
	if err := json.Unmarshal(fields["id"], &id); err != nil {
		return ModelDescriptor{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ModelDescriptor{}, false
	}

	model := ModelDescriptor{ID: id}
	if v, ok := fields["owned_by"]; ok && !isNull(v) {
		var ownedBy string
		if json.Unmarshal(v, &ownedBy) == nil {
			model.OwnedBy = &ownedBy
		}
	}
	if v, ok := fields["created"]; ok && !isNull(v) {
		var created int64
		if json.Unmarshal(v, &created) == nil {
			model.Created = &created
		}
	}
	return model, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func describeShapeError(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
