package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "academic_records", cfg.Database.Name)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Reports.CacheEnabled)
	assert.Equal(t, 5*time.Minute, cfg.Reports.CacheTTL)
	assert.Equal(t, CacheBackendRedis, cfg.Reports.CacheBackend)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	v.Set("REPORT_CACHE_TTL", "not-a-duration")
	v.Set("ENABLE_REPORT_CACHE", "true")
	v.Set("REPORT_CACHE_BACKEND", " Memory")
	cfg := fromViper(v)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Reports.CacheTTL)
	assert.True(t, cfg.Reports.CacheEnabled)
	assert.Equal(t, CacheBackendMemory, cfg.Reports.CacheBackend)

	v.Set("REPORT_CACHE_BACKEND", "memcached")
	assert.Equal(t, CacheBackendRedis, fromViper(v).Reports.CacheBackend)
}
