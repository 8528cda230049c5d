package core

import (
	"context"
	"fmt"
	"time"

	"github.com/wooyeon-app/wy-backend/token"
)

// User is the app-level profile record. The login gateway itself only ever
// reads and writes it through these pass-through operations.
type User struct {
	UserID    string    `json:"user_id"`
	PNum      string    `json:"p_num"`
	NName     string    `json:"n_name"`
	Gender    int16     `json:"gender"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	Status    int16     `json:"status"`
	Job       string    `json:"job"`
	City      string    `json:"city"`
	District  string    `json:"district"`
	MBTI      *string   `json:"mbti"`
}

// userStatusActive gates profile reads; other statuses are rejected with
// app code 901.
const userStatusActive = 1

// SearchFilter narrows a user search. Zero page/size default to 1/20.
type SearchFilter struct {
	Gender *int16   `json:"gender"`
	MBTI   []string `json:"mbti"`
	Page   int      `json:"page"`
	Size   int      `json:"size"`
}

func (f *SearchFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 {
		f.Size = 20
	}
}

// UserStore is the persistence boundary for user records. A nil user with a
// nil error means "not found".
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	InsertUser(ctx context.Context, u *User) error
	FindUserByPhone(ctx context.Context, pnum string) (*User, error)
	SearchUsers(ctx context.Context, f SearchFilter) ([]User, int64, error)
}

// TokenPair is returned by phone verification.
type TokenPair struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GetUser returns an active user's profile.
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.Status != userStatusActive {
		return nil, ErrInactiveUser
	}
	return u, nil
}

// CreateUser inserts a profile as supplied by the app.
func (s *Service) CreateUser(ctx context.Context, u *User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if err := s.users.InsertUser(ctx, u); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// VerifyPhone looks a user up by phone number and, when found, mints a fresh
// token pair for them.
func (s *Service) VerifyPhone(ctx context.Context, pnum string) (*TokenPair, error) {
	u, err := s.users.FindUserByPhone(ctx, pnum)
	if err != nil {
		return nil, fmt.Errorf("find user by phone: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	access, err := token.IssueAccess(s.cfg.JWT.Secret, s.cfg.JWT.Issuer, u.UserID, "", s.cfg.JWT.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := token.IssueRefresh(s.cfg.JWT.Secret, s.cfg.JWT.Issuer, u.UserID, s.cfg.JWT.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{UserID: u.UserID, AccessToken: access, RefreshToken: refresh}, nil
}

// SearchUsers returns a page of users plus the unpaged total.
func (s *Service) SearchUsers(ctx context.Context, f SearchFilter) ([]User, int64, error) {
	f.normalize()
	users, total, err := s.users.SearchUsers(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	return users, total, nil
}
