package oauth

import (
	"context"
	"net/http"
	"net/url"
)

// Naver exchanges authorization codes with Naver. The profile fetch and
// field mapping have not been built out yet.
type Naver struct {
	Config Config
	HTTP   *http.Client
}

func (n Naver) Login(ctx context.Context, code string) (Identity, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", n.Config.ClientID)
	form.Set("client_secret", n.Config.ClientSecret)
	form.Set("redirect_uri", n.Config.RedirectURI)
	form.Set("code", code)

	if _, err := exchangeCode(ctx, n.HTTP, ProviderNaver, n.Config.TokenURL, form); err != nil {
		return Identity{}, err
	}
	return Identity{}, ErrNotImplemented
}
