package postgres

import (
	"context"
	"database/sql"
	"errors"

	"alfozan-insights/internal/domain/auth"
)

const userColumns = `id, username, name, role, status, password_hash`

// FindByUsername 依帳號查詢使用者。
func (r *Repo) FindByUsername(ctx context.Context, username string) (auth.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, username))
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, auth.ErrNotFound
	}
	return u, err
}

// FindByID 依 ID 查詢使用者。
func (r *Repo) FindByID(ctx context.Context, id string) (auth.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, auth.ErrNotFound
	}
	return u, err
}

// UpsertUser 供 seed/migrate 使用，以 username 為唯一鍵。
func (r *Repo) UpsertUser(ctx context.Context, u auth.User) error {
	const q = `
INSERT INTO users (id, username, name, role, status, password_hash)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (username)
DO UPDATE SET name = EXCLUDED.name,
              role = EXCLUDED.role,
              status = EXCLUDED.status,
              password_hash = EXCLUDED.password_hash;
`
	_, err := r.db.ExecContext(ctx, q,
		u.ID, u.Username, u.Name, string(u.Role), string(u.Status), u.Password,
	)
	return err
}

func scanUser(row rowScanner) (auth.User, error) {
	var u auth.User
	var role, status string
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &role, &status, &u.Password); err != nil {
		return auth.User{}, err
	}
	u.Role = auth.Role(role)
	u.Status = auth.Status(status)
	return u, nil
}
