package service

import (
	"sync/atomic"
	"time"
)

// HealthStatus readiness 回應內容
type HealthStatus struct {
	Ready      bool       `json:"ready"`
	Draining   bool       `json:"draining"`
	StartedAt  time.Time  `json:"startedAt"`
	ReadySince *time.Time `json:"readySince,omitempty"`
	UptimeSec  int64      `json:"uptimeSec"`
}

type HealthService struct {
	startedAt  time.Time
	ready      atomic.Bool
	draining   atomic.Bool
	readySince atomic.Int64 // unix nano，0 代表尚未 ready
	now        func() time.Time
}

func NewHealthService() *HealthService {
	s := &HealthService{now: time.Now}
	s.startedAt = s.now()
	return s
}

// SetReady listener 建立後打開；關閉流程開始時關掉並進入 draining
func (s *HealthService) SetReady(v bool) {
	if v {
		s.draining.Store(false)
		s.readySince.Store(s.now().UnixNano())
	} else if s.ready.Load() {
		s.draining.Store(true)
		s.readySince.Store(0)
	}
	s.ready.Store(v)
}

// IsLive draining 期間仍回 true，讓進行中的請求跑完
func (s *HealthService) IsLive() bool {
	return true
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

func (s *HealthService) Status() HealthStatus {
	now := s.now()
	status := HealthStatus{
		Ready:     s.ready.Load(),
		Draining:  s.draining.Load(),
		StartedAt: s.startedAt.UTC(),
		UptimeSec: int64(now.Sub(s.startedAt).Seconds()),
	}
	if ns := s.readySince.Load(); ns > 0 {
		since := time.Unix(0, ns).UTC()
		status.ReadySince = &since
	}
	return status
}
