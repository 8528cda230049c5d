package core

import (
	"errors"
	"net/http"

	"github.com/wooyeon-app/wy-backend/oauth"
)

// Sentinel errors surfaced by the service layer. The gin adapter maps them
// onto the response envelope; everything unknown is a 500.
var (
	// ErrInvalidState rejects a callback whose state value was never issued,
	// already used, or expired.
	ErrInvalidState = errors.New("invalid or expired state")

	// ErrUserNotFound is a caller error (unknown user id / phone number).
	ErrUserNotFound = errors.New("user not found")

	// ErrInactiveUser marks a user that exists but has not been activated.
	// It maps to HTTP 400 with app code 901.
	ErrInactiveUser = errors.New("user is not active")
)

// InactiveUserCode is the app-level code the envelope carries for
// ErrInactiveUser.
const InactiveUserCode = 901

// HTTPStatus maps a service error to the response status.
func HTTPStatus(err error) int {
	var ext *oauth.ExternalError
	var sign *oauth.SigningError
	switch {
	case errors.Is(err, oauth.ErrUnsupportedProvider),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInactiveUser):
		return http.StatusBadRequest
	case errors.As(err, &ext):
		return http.StatusBadGateway
	case errors.As(err, &sign), errors.Is(err, oauth.ErrNotImplemented):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
