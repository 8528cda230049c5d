package oauth

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Kakao exchanges authorization codes with Kakao and fetches the user's
// profile from the Kakao API.
type Kakao struct {
	Config Config
	HTTP   *http.Client
}

type kakaoProperties struct {
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
}

type kakaoProfile struct {
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profile_image_url"`
}

type kakaoAccount struct {
	Profile         *kakaoProfile `json:"profile"`
	HasEmail        *bool         `json:"has_email"`
	IsEmailVerified *bool         `json:"is_email_verified"`
	Email           string        `json:"email"`
}

type kakaoUser struct {
	ID           int64            `json:"id"`
	ConnectedAt  string           `json:"connected_at"`
	Properties   *kakaoProperties `json:"properties"`
	KakaoAccount *kakaoAccount    `json:"kakao_account"`
}

// Login exchanges the code and resolves the Kakao profile into an Identity.
func (k Kakao) Login(ctx context.Context, code string) (Identity, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", k.Config.ClientID)
	form.Set("redirect_uri", k.Config.RedirectURI)
	form.Set("code", code)

	tok, err := exchangeCode(ctx, k.HTTP, ProviderKakao, k.Config.TokenURL, form)
	if err != nil {
		return Identity{}, err
	}
	return k.resolve(ctx, tok.AccessToken)
}

func (k Kakao) resolve(ctx context.Context, accessToken string) (Identity, error) {
	var u kakaoUser
	if err := fetchJSON(ctx, k.HTTP, ProviderKakao, k.Config.UserInfoURL, accessToken, &u); err != nil {
		return Identity{}, err
	}

	// Display name: top-level properties nickname wins, the nested account
	// profile nickname is the fallback.
	name := ""
	if u.Properties != nil {
		name = u.Properties.Nickname
	}
	if name == "" && u.KakaoAccount != nil && u.KakaoAccount.Profile != nil {
		name = u.KakaoAccount.Profile.Nickname
	}

	// Email is passed through as-is; the has_email/is_email_verified flags
	// are left for callers to apply policy on.
	email := ""
	if u.KakaoAccount != nil {
		email = u.KakaoAccount.Email
	}

	return Identity{
		Provider: ProviderKakao,
		UserID:   strconv.FormatInt(u.ID, 10),
		Email:    email,
		Name:     name,
	}, nil
}
