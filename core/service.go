// Package core orchestrates the login flow: provider dispatch, identity
// linking, and first-party token issuance. HTTP concerns live in
// adapters/gin; provider wire formats live in oauth.
package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wooyeon-app/wy-backend/oauth"
	"github.com/wooyeon-app/wy-backend/token"
)

// LinkStore maps provider identities onto local user ids. Implementations
// must make find-or-create safe under concurrent callbacks for the same
// identity (uniqueness on provider+provider_user_id).
type LinkStore interface {
	FindUserByProviderIdentity(ctx context.Context, provider, providerUserID string) (string, bool, error)
	CreateUserProviderLink(ctx context.Context, provider, providerUserID, userID, email, displayName string, now time.Time) error
}

// LoginResult is what a successful callback produces.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	Name         string
}

// Service is the provider-agnostic login service. All fields are set at
// construction and read-only afterwards; it is safe for concurrent use.
type Service struct {
	cfg    *Config
	links  LinkStore
	users  UserStore
	states oauth.StateCache

	apple  oauth.Apple
	google oauth.Google
	kakao  oauth.Kakao
	naver  oauth.Naver
}

// NewService wires the service. httpClient is shared by all outbound
// provider calls; pass nil for a sensible default.
func NewService(cfg *Config, links LinkStore, users UserStore, states oauth.StateCache, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Service{
		cfg:    cfg,
		links:  links,
		users:  users,
		states: states,
		apple:  oauth.Apple{Config: cfg.Providers[oauth.ProviderApple], HTTP: httpClient},
		google: oauth.Google{Config: cfg.Providers[oauth.ProviderGoogle], HTTP: httpClient},
		kakao:  oauth.Kakao{Config: cfg.Providers[oauth.ProviderKakao], HTTP: httpClient},
		naver:  oauth.Naver{Config: cfg.Providers[oauth.ProviderNaver], HTTP: httpClient},
	}
}

// Config exposes the immutable process configuration.
func (s *Service) Config() *Config { return s.cfg }

// AuthorizeURL starts a login: generates a state nonce, records it as
// pending, and returns the provider's authorization URL to redirect to.
func (s *Service) AuthorizeURL(ctx context.Context, providerSlug string) (string, error) {
	p, err := oauth.ParseProvider(providerSlug)
	if err != nil {
		return "", err
	}
	state := oauth.NewState()
	if err := s.states.Put(ctx, state, oauth.StateData{Provider: p}, oauth.StateTTL); err != nil {
		return "", fmt.Errorf("store login state: %w", err)
	}
	return oauth.AuthCodeURL(p, s.cfg.Providers[p], state), nil
}

// Login handles a provider callback: consumes the state, runs the provider's
// exchange+resolve, binds the external identity to a local user, and mints
// the token pair. Nothing is persisted when any step fails.
func (s *Service) Login(ctx context.Context, providerSlug, code, state string) (*LoginResult, error) {
	p, err := oauth.ParseProvider(providerSlug)
	if err != nil {
		return nil, err
	}

	sd, ok, err := s.states.Take(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("load login state: %w", err)
	}
	if !ok || sd.Provider != p {
		return nil, ErrInvalidState
	}

	var ident oauth.Identity
	switch p {
	case oauth.ProviderApple:
		ident, err = s.apple.Login(ctx, code)
	case oauth.ProviderGoogle:
		ident, err = s.google.Login(ctx, code)
	case oauth.ProviderKakao:
		ident, err = s.kakao.Login(ctx, code)
	case oauth.ProviderNaver:
		ident, err = s.naver.Login(ctx, code)
	}
	if err != nil {
		return nil, err
	}

	userID, err := s.findOrCreateUser(ctx, p, ident)
	if err != nil {
		return nil, err
	}

	access, err := token.IssueAccess(s.cfg.JWT.Secret, s.cfg.JWT.Issuer, userID, ident.Email, s.cfg.JWT.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := token.IssueRefresh(s.cfg.JWT.Secret, s.cfg.JWT.Issuer, userID, s.cfg.JWT.RefreshTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       userID,
		Email:        ident.Email,
		Name:         ident.Name,
	}, nil
}

func (s *Service) findOrCreateUser(ctx context.Context, p oauth.Provider, ident oauth.Identity) (string, error) {
	userID, found, err := s.links.FindUserByProviderIdentity(ctx, string(p), ident.UserID)
	if err != nil {
		return "", fmt.Errorf("look up provider link: %w", err)
	}
	if found {
		return userID, nil
	}
	userID = uuid.NewString()
	if err := s.links.CreateUserProviderLink(ctx, string(p), ident.UserID, userID, ident.Email, ident.Name, time.Now()); err != nil {
		return "", fmt.Errorf("create provider link: %w", err)
	}
	return userID, nil
}
