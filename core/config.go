package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/wooyeon-app/wy-backend/oauth"
)

// JWTConfig configures first-party token issuance.
type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Config is the immutable process configuration: built once in LoadConfig,
// shared read-only by every handler. Any missing required value is
// startup-fatal, never a per-request error.
type Config struct {
	ListenAddr    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	// DeepLinkBase is where the callback redirects with the token pair,
	// e.g. "wooyeon://".
	DeepLinkBase string

	JWT       JWTConfig
	Providers map[oauth.Provider]oauth.Config
}

// LoadConfig reads configuration from the environment. Callers load a .env
// file beforehand if they want one (see the server main).
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ListenAddr:    envOr("LISTEN_ADDR", ":3000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DeepLinkBase:  envOr("DEEP_LINK_BASE", "wooyeon://"),
		Providers:     make(map[oauth.Provider]oauth.Config, 4),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	jwtCfg, err := loadJWTConfig()
	if err != nil {
		return nil, err
	}
	cfg.JWT = jwtCfg

	for _, p := range []oauth.Provider{oauth.ProviderGoogle, oauth.ProviderKakao, oauth.ProviderNaver} {
		pc, err := loadProvider(p)
		if err != nil {
			return nil, err
		}
		cfg.Providers[p] = pc
	}
	apple, err := loadApple()
	if err != nil {
		return nil, err
	}
	cfg.Providers[oauth.ProviderApple] = apple

	return cfg, nil
}

func loadJWTConfig() (JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return JWTConfig{}, fmt.Errorf("JWT_SECRET is required")
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		return JWTConfig{}, fmt.Errorf("JWT_ISSUER is required")
	}
	accessMin, err := envInt("JWT_ACCESS_TTL_MINUTES", 30)
	if err != nil {
		return JWTConfig{}, err
	}
	refreshDays, err := envInt("JWT_REFRESH_TTL_DAYS", 14)
	if err != nil {
		return JWTConfig{}, err
	}
	return JWTConfig{
		Secret:     secret,
		Issuer:     issuer,
		AccessTTL:  time.Duration(accessMin) * time.Minute,
		RefreshTTL: time.Duration(refreshDays) * 24 * time.Hour,
	}, nil
}

func loadProvider(p oauth.Provider) (oauth.Config, error) {
	prefix := strings.ToUpper(string(p))
	clientID := os.Getenv(prefix + "_CLIENT_ID")
	if clientID == "" {
		return oauth.Config{}, fmt.Errorf("%s_CLIENT_ID is required", prefix)
	}
	clientSecret := os.Getenv(prefix + "_CLIENT_SECRET")
	if clientSecret == "" {
		return oauth.Config{}, fmt.Errorf("%s_CLIENT_SECRET is required", prefix)
	}
	authURL, tokenURL, userInfoURL := oauth.Endpoints(p)
	return oauth.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  envOr(prefix+"_REDIRECT_URI", "http://localhost:3000/auth/"+string(p)+"/callback"),
		AuthURL:      authURL,
		TokenURL:     tokenURL,
		UserInfoURL:  userInfoURL,
	}, nil
}

func loadApple() (oauth.Config, error) {
	clientID := os.Getenv("APPLE_CLIENT_ID")
	if clientID == "" {
		return oauth.Config{}, fmt.Errorf("APPLE_CLIENT_ID is required")
	}
	teamID := os.Getenv("APPLE_TEAM_ID")
	if teamID == "" {
		return oauth.Config{}, fmt.Errorf("APPLE_TEAM_ID is required")
	}
	keyID := os.Getenv("APPLE_KEY_ID")
	if keyID == "" {
		return oauth.Config{}, fmt.Errorf("APPLE_KEY_ID is required")
	}

	pem := os.Getenv("APPLE_PRIVATE_KEY")
	if pem == "" {
		path := os.Getenv("APPLE_PRIVATE_KEY_FILE")
		if path == "" {
			return oauth.Config{}, fmt.Errorf("APPLE_PRIVATE_KEY or APPLE_PRIVATE_KEY_FILE is required")
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return oauth.Config{}, fmt.Errorf("read apple private key: %w", err)
		}
		pem = string(b)
	}
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(pem))
	if err != nil {
		return oauth.Config{}, fmt.Errorf("parse apple private key: %w", err)
	}

	authURL, tokenURL, userInfoURL := oauth.Endpoints(oauth.ProviderApple)
	return oauth.Config{
		ClientID:    clientID,
		RedirectURI: envOr("APPLE_REDIRECT_URI", "http://localhost:3000/auth/apple/callback"),
		AuthURL:     authURL,
		TokenURL:    tokenURL,
		UserInfoURL: userInfoURL,
		Apple: &oauth.AppleKey{
			TeamID:     teamID,
			KeyID:      keyID,
			PrivateKey: key,
		},
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
