package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, "secret", cfg.JWTSecretKey)
	assert.Equal(t, time.Hour, cfg.AccessTokenDuration)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, "localhost", cfg.DB.DbHOST)
	assert.Equal(t, "http://localhost:9000", cfg.MinIO.PublicURL)
	assert.Equal(t, "postgres", cfg.StorageBackend)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ACCESS_TOKEN_DURATION", "30m")
	t.Setenv("MAX_UPLOAD_SIZE", "1024")
	t.Setenv("POSTGRES_USER", "forum")
	t.Setenv("MINIO_ENDPOINT", "s3.local:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenDuration)
	assert.Equal(t, int64(1024), cfg.MaxUploadSize)
	assert.Equal(t, "forum", cfg.DB.DbUSER)
	assert.Equal(t, "https://s3.local:9000", cfg.MinIO.PublicURL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 2*time.Hour, parseDuration("7d", 2*time.Hour))
	assert.Equal(t, int64(5*1024*1024), parseMaxUploadSize("not-a-number"))
	assert.Equal(t, int64(5*1024*1024), parseMaxUploadSize("-1"))
}
