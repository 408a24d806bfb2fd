package profile

import "time"

// Record mirrors one row in the persistent `profile` table.  The
// operational state is captured by two nullable timestamps:
//
//   - SuspendedAt – page is temporarily disabled (e.g., billing).
//   - DeletedAt   – page is permanently removed.
//
// Either timestamp being non-NULL prevents the public loader from serving
// the page.
type Record struct {
	ID          uint64     `db:"id"`
	UserID      uint64     `db:"user_id"`
	Slug        string     `db:"slug"`
	DisplayName string     `db:"display_name"`
	Bio         string     `db:"bio"`
	Theme       string     `db:"theme"`
	Email       string     `db:"email"`
	Phone       string     `db:"phone"`
	Address     string     `db:"address"`
	SuspendedAt *time.Time `db:"suspended_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Settings carries the dashboard-editable subset of a profile.
type Settings struct {
	DisplayName string `json:"displayName" validate:"required,max=120"`
	Bio         string `json:"bio"         validate:"max=500"`
	Theme       string `json:"theme"       validate:"required"`
	Email       string `json:"email"       validate:"omitempty,email"`
	Phone       string `json:"phone"       validate:"max=32"`
	Address     string `json:"address"     validate:"max=250"`
}
