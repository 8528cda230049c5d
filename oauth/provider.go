// Package oauth drives the authorization-code flow against the social
// identity providers the app federates with (Apple, Google, Kakao, Naver)
// and normalizes their heterogeneous responses into a single Identity shape.
package oauth

import (
	"crypto/ecdsa"
	"errors"

	"golang.org/x/oauth2"
)

// Provider identifies a configured social login provider.
type Provider string

const (
	ProviderApple  Provider = "apple"
	ProviderGoogle Provider = "google"
	ProviderKakao  Provider = "kakao"
	ProviderNaver  Provider = "naver"
)

// ErrUnsupportedProvider is returned when a path parameter does not name one
// of the four known providers. The match is case-sensitive and exact.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// ErrNotImplemented marks a provider whose profile resolution has not been
// built out yet. The code exchange itself still works for such providers.
var ErrNotImplemented = errors.New("provider login not implemented")

// ParseProvider maps a path segment onto a known Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderApple, ProviderGoogle, ProviderKakao, ProviderNaver:
		return Provider(s), nil
	}
	return "", ErrUnsupportedProvider
}

// Config holds the static per-provider settings. One immutable instance per
// provider is built at startup and shared by all requests.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string

	// Apple is set only for the apple provider.
	Apple *AppleKey
}

// AppleKey carries Apple's developer credentials. PrivateKey is parsed once
// at startup; invalid key material never reaches request handling.
type AppleKey struct {
	TeamID     string
	KeyID      string
	PrivateKey *ecdsa.PrivateKey
}

// Endpoints returns the well-known OAuth endpoints for a provider.
func Endpoints(p Provider) (authURL, tokenURL, userInfoURL string) {
	switch p {
	case ProviderApple:
		return "https://appleid.apple.com/auth/authorize",
			"https://appleid.apple.com/auth/token",
			"https://appleid.apple.com/auth/userinfo"
	case ProviderGoogle:
		return "https://accounts.google.com/o/oauth2/v2/auth",
			"https://oauth2.googleapis.com/token",
			"https://www.googleapis.com/oauth2/v2/userinfo"
	case ProviderKakao:
		return "https://kauth.kakao.com/oauth/authorize",
			"https://kauth.kakao.com/oauth/token",
			"https://kapi.kakao.com/v2/user/me"
	case ProviderNaver:
		return "https://nid.naver.com/oauth2.0/authorize",
			"https://nid.naver.com/oauth2.0/token",
			"https://openapi.naver.com/v1/nid/me"
	}
	return "", "", ""
}

// AuthCodeURL builds the provider's authorization URL for the given state.
// Scopes follow each provider's requirements: Apple asks for name+email and
// must use form_post (it redirects with a POST body instead of query
// parameters), Google asks for the standard OIDC trio, Kakao and Naver use
// their account defaults.
func AuthCodeURL(p Provider, cfg Config, state string) string {
	oc := oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.AuthURL,
			TokenURL: cfg.TokenURL,
		},
	}
	var opts []oauth2.AuthCodeOption
	switch p {
	case ProviderApple:
		oc.Scopes = []string{"name", "email"}
		opts = append(opts, oauth2.SetAuthURLParam("response_mode", "form_post"))
	case ProviderGoogle:
		oc.Scopes = []string{"openid", "email", "profile"}
	}
	return oc.AuthCodeURL(state, opts...)
}

// Identity is the normalized view of a provider-side user, produced per
// callback and discarded once the login response is built.
type Identity struct {
	Provider Provider
	UserID   string

	// Optional fields; empty means the provider did not supply them.
	Email          string
	EmailVerified  string
	IsPrivateEmail string
	Name           string
}
