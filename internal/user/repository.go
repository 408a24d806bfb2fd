package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no matching user row exists.
var ErrNotFound = errors.New("user not found")

// ByEmail fetches a single user row that is not deleted.
func ByEmail(ctx context.Context, db *sqlx.DB, email string) (*Record, error) {
	const q = `
        SELECT id, email, name, avatar_url, deleted_at, created_at, updated_at
        FROM   user
        WHERE  email = ?
          AND  deleted_at IS NULL
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ByID fetches a single user row by primary key.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = `
        SELECT id, email, name, avatar_url, deleted_at, created_at, updated_at
        FROM   user
        WHERE  id = ?
          AND  deleted_at IS NULL
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert creates the user on first sign-in or refreshes name and avatar on
// subsequent ones.  Returns the row ID either way.
func Upsert(ctx context.Context, db *sqlx.DB, email, name, avatarURL string) (uint64, error) {
	const q = `
        INSERT INTO user (email, name, avatar_url)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE
            name = VALUES(name), avatar_url = VALUES(avatar_url)`
	res, err := db.ExecContext(ctx, q, email, name, avatarURL)
	if err != nil {
		return 0, err
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		return uint64(id), nil
	}

	// ON DUPLICATE KEY UPDATE reports LastInsertId 0 on some drivers when
	// the row already existed; fall back to a lookup.
	rec, err := ByEmail(ctx, db, email)
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}
