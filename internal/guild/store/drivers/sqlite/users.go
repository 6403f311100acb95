package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, email, username, password_hash, avatar_url, created_at`

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u      domain.User
		avatar sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &avatar, &u.CreatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.AvatarURL = mapNullStringPtr(avatar)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.PasswordHash, mapOptionalString(u.AvatarURL), utc(u.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	return exists, err
}
