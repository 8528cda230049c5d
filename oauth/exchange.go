package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ExternalError reports a failed call to a provider endpoint: transport
// failure, non-2xx status, or a body that does not parse. Authorization codes
// are single-use, so the exchange is never retried; the whole login attempt
// fails instead.
type ExternalError struct {
	Provider Provider
	Op       string // "token" or "userinfo"
	Status   int    // 0 for transport/parse failures
	Detail   string
	Err      error
}

func (e *ExternalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s request failed: status %d: %s", e.Provider, e.Op, e.Status, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s request failed: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s request failed: %s", e.Provider, e.Op, e.Detail)
}

func (e *ExternalError) Unwrap() error { return e.Err }

// tokenResponse covers the union of the four providers' token payloads.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	Scope        string `json:"scope"`
}

// exchangeCode POSTs the authorization code to the provider's token endpoint.
// form must already contain any provider-specific credentials (static secret
// or Apple's signed client assertion).
func exchangeCode(ctx context.Context, client *http.Client, p Provider, tokenURL string, form url.Values) (tokenResponse, error) {
	var tok tokenResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return tok, &ExternalError{Provider: p, Op: "token", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return tok, &ExternalError{Provider: p, Op: "token", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return tok, &ExternalError{Provider: p, Op: "token", Status: resp.StatusCode, Detail: string(body)}
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return tok, &ExternalError{Provider: p, Op: "token", Detail: "unparsable token response", Err: err}
	}
	return tok, nil
}

// fetchJSON issues an authenticated GET against a provider profile endpoint
// and decodes the response into out.
func fetchJSON(ctx context.Context, client *http.Client, p Provider, rawURL, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &ExternalError{Provider: p, Op: "userinfo", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := client.Do(req)
	if err != nil {
		return &ExternalError{Provider: p, Op: "userinfo", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ExternalError{Provider: p, Op: "userinfo", Status: resp.StatusCode, Detail: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ExternalError{Provider: p, Op: "userinfo", Detail: "unparsable profile response", Err: err}
	}
	return nil
}
