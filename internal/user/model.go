package user

import "time"

// Record mirrors one row in the persistent `user` table.  Accounts are
// created on first OAuth sign-in; there is no local password column.
type Record struct {
	ID        uint64     `db:"id"`
	Email     string     `db:"email"`
	Name      string     `db:"name"`
	AvatarURL string     `db:"avatar_url"`
	DeletedAt *time.Time `db:"deleted_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}
