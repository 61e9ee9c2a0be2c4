package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wonderscape/internal/config"
	"wonderscape/internal/logging"
)

func TestProvideEmbeddedMediaServer_S3Backend(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.StorageS3}}

	assert.Nil(t, ProvideEmbeddedMediaServer(cfg, nil, logging.Nop()))
}

func TestProvideJWTManager(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "s", TokenTTL: 1, Issuer: "wonderscape"}}
	jwt := ProvideJWTManager(cfg)

	token, err := jwt.GenerateToken(5, "a@b.co")
	require.NoError(t, err)

	claims, err := jwt.ValidToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}
