// Package pgstore implements the link and user stores on Postgres via
// pgxpool. Uniqueness on (provider, provider_user_id) is what keeps
// concurrent find-or-create for the same identity safe.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wooyeon-app/wy-backend/core"
)

// Store bundles both persistence roles behind one pool.
type Store struct {
	pg *pgxpool.Pool
}

func New(pg *pgxpool.Pool) *Store {
	return &Store{pg: pg}
}

// FindUserByProviderIdentity returns the local user id linked to the given
// provider identity, if any.
func (s *Store) FindUserByProviderIdentity(ctx context.Context, provider, providerUserID string) (string, bool, error) {
	var userID string
	err := s.pg.QueryRow(ctx,
		`SELECT user_id FROM tb_user_provider WHERE provider = $1 AND provider_user_id = $2`,
		provider, providerUserID,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

// CreateUserProviderLink records a fresh link with the connection and
// last-login timestamps.
func (s *Store) CreateUserProviderLink(ctx context.Context, provider, providerUserID, userID, email, displayName string, now time.Time) error {
	_, err := s.pg.Exec(ctx,
		`INSERT INTO tb_user_provider
		   (user_id, provider, provider_user_id, email, display_name, connected_at, last_login_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $6)`,
		userID, provider, providerUserID, email, displayName, now,
	)
	return err
}

const userColumns = `user_id, p_num, n_name, gender, birth_date, created_at, status, job, city, district, mbti`

func scanUser(row pgx.Row) (*core.User, error) {
	var u core.User
	err := row.Scan(&u.UserID, &u.PNum, &u.NName, &u.Gender, &u.BirthDate,
		&u.CreatedAt, &u.Status, &u.Job, &u.City, &u.District, &u.MBTI)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*core.User, error) {
	return scanUser(s.pg.QueryRow(ctx,
		`SELECT `+userColumns+` FROM tb_user WHERE user_id = $1`, userID))
}

func (s *Store) FindUserByPhone(ctx context.Context, pnum string) (*core.User, error) {
	return scanUser(s.pg.QueryRow(ctx,
		`SELECT `+userColumns+` FROM tb_user WHERE p_num = $1`, pnum))
}

func (s *Store) InsertUser(ctx context.Context, u *core.User) error {
	_, err := s.pg.Exec(ctx,
		`INSERT INTO tb_user
		   (user_id, p_num, n_name, gender, birth_date, created_at, status, job, city, district, mbti)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.UserID, u.PNum, u.NName, u.Gender, u.BirthDate,
		u.CreatedAt, u.Status, u.Job, u.City, u.District, u.MBTI,
	)
	return err
}

// SearchUsers filters by gender and mbti, newest first.
func (s *Store) SearchUsers(ctx context.Context, f core.SearchFilter) ([]core.User, int64, error) {
	var conds []string
	var args []any
	if f.Gender != nil {
		args = append(args, *f.Gender)
		conds = append(conds, fmt.Sprintf("gender = $%d", len(args)))
	}
	if len(f.MBTI) > 0 {
		args = append(args, f.MBTI)
		conds = append(conds, fmt.Sprintf("mbti = ANY($%d)", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := s.pg.QueryRow(ctx, `SELECT count(*) FROM tb_user`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Size, (f.Page-1)*f.Size)
	rows, err := s.pg.Query(ctx,
		`SELECT `+userColumns+` FROM tb_user`+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.UserID, &u.PNum, &u.NName, &u.Gender, &u.BirthDate,
			&u.CreatedAt, &u.Status, &u.Job, &u.City, &u.District, &u.MBTI); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
