package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()

	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestLoadCacheConfigKeepsBodyCapOnBadValue(t *testing.T) {
	t.Setenv("CACHE_MAX_BODY_BYTES", "one-megabyte")

	cfg := LoadCacheConfig()

	// A typo must not disable the cap; zero would store bodies of any size.
	assert.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestLoadCacheConfigHonorsOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_MAX_BODY_BYTES", "4096")

	cfg := LoadCacheConfig()

	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.Methods["HEAD"])
	assert.Equal(t, 4096, cfg.MaxBodyBytes)
}
