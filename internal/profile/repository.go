package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a slug or user has no live profile row.
var ErrNotFound = errors.New("profile not found")

const columns = `id, user_id, slug, display_name, bio, theme, email, phone,
                 address, suspended_at, deleted_at, created_at, updated_at`

// BySlug fetches a single profile row that is not suspended or deleted.
// The caller supplies a context so the lookup respects request deadlines.
func BySlug(ctx context.Context, db *sqlx.DB, slug string) (*Record, error) {
	q := `SELECT ` + columns + `
            FROM profile
           WHERE slug = ?
             AND suspended_at IS NULL
             AND deleted_at   IS NULL
           LIMIT 1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ByUser fetches the profile owned by userID.  Used by the dashboard to
// resolve the session user's collection scope.
func ByUser(ctx context.Context, db *sqlx.DB, userID uint64) (*Record, error) {
	q := `SELECT ` + columns + `
            FROM profile
           WHERE user_id = ?
             AND deleted_at IS NULL
           LIMIT 1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserts a fresh profile for userID during onboarding.
func Create(ctx context.Context, db *sqlx.DB, userID uint64, slug, displayName string) (*Record, error) {
	const q = `
        INSERT INTO profile (user_id, slug, display_name, theme)
        VALUES (?, ?, ?, 'base')`
	if _, err := db.ExecContext(ctx, q, userID, slug, displayName); err != nil {
		return nil, err
	}
	return ByUser(ctx, db, userID)
}

// UpdateSettings persists the dashboard-editable fields.
func UpdateSettings(ctx context.Context, db *sqlx.DB, profileID uint64, s Settings) error {
	const q = `
        UPDATE profile
           SET display_name = ?, bio = ?, theme = ?, email = ?, phone = ?, address = ?
         WHERE id = ?`
	res, err := db.ExecContext(ctx, q,
		s.DisplayName, s.Bio, s.Theme, s.Email, s.Phone, s.Address, profileID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows may also mean a no-change write; confirm existence.
		var one int
		if err := db.GetContext(ctx, &one,
			`SELECT 1 FROM profile WHERE id = ? AND deleted_at IS NULL`, profileID); err != nil {
			return ErrNotFound
		}
	}
	return nil
}
