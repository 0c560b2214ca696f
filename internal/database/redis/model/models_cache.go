package model

import "time"

// CachedModels 最近一次成功抓取的模型清單
type CachedModels struct {
	ModelIDs    []string  `json:"modelIds"`
	ResolvedURL string    `json:"resolvedUrl"`
	FetchedAt   time.Time `json:"fetchedAt"`
}
