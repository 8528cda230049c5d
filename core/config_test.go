package core

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wooyeon-app/wy-backend/oauth"
)

func testECPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
}

// setFullEnv populates every variable LoadConfig requires. Individual tests
// override single keys to exercise validation.
func setFullEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://wy:wy@localhost:5432/wy")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "wy")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "")
	t.Setenv("JWT_REFRESH_TTL_DAYS", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("DEEP_LINK_BASE", "")

	for _, prefix := range []string{"GOOGLE", "KAKAO", "NAVER"} {
		t.Setenv(prefix+"_CLIENT_ID", "id-"+prefix)
		t.Setenv(prefix+"_CLIENT_SECRET", "secret-"+prefix)
		t.Setenv(prefix+"_REDIRECT_URI", "")
	}

	t.Setenv("APPLE_CLIENT_ID", "com.wooyeon.app")
	t.Setenv("APPLE_TEAM_ID", "TEAM123")
	t.Setenv("APPLE_KEY_ID", "KEY456")
	t.Setenv("APPLE_PRIVATE_KEY", testECPrivateKeyPEM(t))
	t.Setenv("APPLE_PRIVATE_KEY_FILE", "")
	t.Setenv("APPLE_REDIRECT_URI", "")
}

func TestLoadConfig(t *testing.T) {
	setFullEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, ":3000", cfg.ListenAddr)
	require.Equal(t, "wooyeon://", cfg.DeepLinkBase)
	require.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	require.Equal(t, 14*24*time.Hour, cfg.JWT.RefreshTTL)
	require.Equal(t, "wy", cfg.JWT.Issuer)
	require.Len(t, cfg.Providers, 4)

	kakao := cfg.Providers[oauth.ProviderKakao]
	require.Equal(t, "id-KAKAO", kakao.ClientID)
	require.Equal(t, "http://localhost:3000/auth/kakao/callback", kakao.RedirectURI)
	require.Equal(t, "https://kauth.kakao.com/oauth/token", kakao.TokenURL)

	apple := cfg.Providers[oauth.ProviderApple]
	require.NotNil(t, apple.Apple)
	require.Equal(t, "TEAM123", apple.Apple.TeamID)
	require.Equal(t, "KEY456", apple.Apple.KeyID)
	require.NotNil(t, apple.Apple.PrivateKey)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "JWT_ISSUER",
		"KAKAO_CLIENT_ID", "NAVER_CLIENT_SECRET",
		"APPLE_CLIENT_ID", "APPLE_TEAM_ID", "APPLE_KEY_ID",
	} {
		t.Run(key, func(t *testing.T) {
			setFullEnv(t)
			t.Setenv(key, "")

			_, err := LoadConfig()
			require.Error(t, err)
			require.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadConfigBadAppleKey(t *testing.T) {
	setFullEnv(t)
	t.Setenv("APPLE_PRIVATE_KEY", "not a pem")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "apple private key")
}

func TestLoadConfigBadTTL(t *testing.T) {
	setFullEnv(t)
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	setFullEnv(t)
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("DEEP_LINK_BASE", "wy-dev://")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "5")
	t.Setenv("KAKAO_REDIRECT_URI", "https://api.wooyeon.app/auth/kakao/callback")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "wy-dev://", cfg.DeepLinkBase)
	require.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
	require.Equal(t, "https://api.wooyeon.app/auth/kakao/callback", cfg.Providers[oauth.ProviderKakao].RedirectURI)
}
