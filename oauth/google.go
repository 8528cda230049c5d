package oauth

import (
	"context"
	"net/http"
	"net/url"
)

// Google exchanges authorization codes with Google. The profile fetch and
// field mapping have not been built out yet.
type Google struct {
	Config Config
	HTTP   *http.Client
}

func (g Google) Login(ctx context.Context, code string) (Identity, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", g.Config.ClientID)
	form.Set("client_secret", g.Config.ClientSecret)
	form.Set("redirect_uri", g.Config.RedirectURI)
	form.Set("code", code)

	if _, err := exchangeCode(ctx, g.HTTP, ProviderGoogle, g.Config.TokenURL, form); err != nil {
		return Identity{}, err
	}
	return Identity{}, ErrNotImplemented
}
