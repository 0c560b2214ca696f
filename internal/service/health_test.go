package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthServiceLifecycle(t *testing.T) {
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewHealthService()
	s.now = func() time.Time { return clock }
	s.startedAt = clock

	status := s.Status()
	assert.True(t, s.IsLive())
	assert.False(t, status.Ready)
	assert.False(t, status.Draining)
	assert.Nil(t, status.ReadySince)

	clock = clock.Add(3 * time.Second)
	s.SetReady(true)
	status = s.Status()
	assert.True(t, status.Ready)
	if assert.NotNil(t, status.ReadySince) {
		assert.Equal(t, clock, *status.ReadySince)
	}
	assert.Equal(t, int64(3), status.UptimeSec)

	s.SetReady(false)
	status = s.Status()
	assert.False(t, status.Ready)
	assert.True(t, status.Draining)
	assert.Nil(t, status.ReadySince)
	assert.True(t, s.IsLive())
}

func TestHealthServiceNotDrainingBeforeReady(t *testing.T) {
	s := NewHealthService()
	s.SetReady(false)
	assert.False(t, s.Status().Draining)
}
