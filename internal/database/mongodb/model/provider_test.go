package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderActiveProxy(t *testing.T) {
	var nilProvider *Provider
	assert.Nil(t, nilProvider.ActiveProxy())

	p := &Provider{}
	assert.Nil(t, p.ActiveProxy())

	p.Meta.ProxyConfig = &ProxyConfig{Enabled: false, URL: "http://proxy:8080"}
	assert.Nil(t, p.ActiveProxy())

	p.Meta.ProxyConfig = &ProxyConfig{Enabled: true}
	assert.Nil(t, p.ActiveProxy())

	p.Meta.ProxyConfig = &ProxyConfig{Enabled: true, URL: "http://proxy:8080"}
	assert.Equal(t, "http://proxy:8080", p.ActiveProxy().URL)
}
