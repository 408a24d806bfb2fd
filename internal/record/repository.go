// internal/record/repository.go
//
// SQL helpers for ordered collection records.
//
// Context
// -------
// Every helper accepts a *sqlx.DB scoped to the Biztro schema and a
// profileID + kind pair so ownership is enforced in the query itself rather
// than in handler code.  The two multi-row mutations—Delete and Reorder—run
// inside a transaction: either the whole new ordering lands or none of it
// does.
//
// Notes
// -----
// • Max line length 100 columns.
package record

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when an id (or short code) does not resolve to a
// live row owned by the caller.
var ErrNotFound = errors.New("record not found")

// ErrBadPermutation is returned by Reorder when the submitted id set is not
// exactly the current id set of the collection.
var ErrBadPermutation = errors.New("reorder ids are not a permutation of the collection")

const columns = `id, profile_id, kind, title, target, icon, code, position,
                 is_active, clicks, created_at, updated_at`

// ListByProfile returns the collection sorted ascending by position.
func ListByProfile(ctx context.Context, db *sqlx.DB, profileID uint64, kind string) ([]Record, error) {
	q := `SELECT ` + columns + `
            FROM record
           WHERE profile_id = ? AND kind = ?
           ORDER BY position ASC`
	var rows []Record
	if err := db.SelectContext(ctx, &rows, q, profileID, kind); err != nil {
		return nil, err
	}
	return rows, nil
}

// ByID fetches one row, still scoped to its owner.
func ByID(ctx context.Context, db *sqlx.DB, profileID, id uint64) (*Record, error) {
	q := `SELECT ` + columns + `
            FROM record
           WHERE id = ? AND profile_id = ?
           LIMIT 1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id, profileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ByCode resolves a short branded code to its row.  Inactive rows are
// excluded so a paused short link stops redirecting immediately.
func ByCode(ctx context.Context, db *sqlx.DB, code string) (*Record, error) {
	q := `SELECT ` + columns + `
            FROM record
           WHERE kind = ? AND code = ? AND is_active = TRUE
           LIMIT 1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, KindShort, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Insert appends a record at the end of its collection.  Position is
// computed inside the INSERT so two concurrent creates cannot claim the same
// slot.  The stored row is read back so callers get server-assigned id,
// position, and timestamps.
func Insert(ctx context.Context, db *sqlx.DB, rec *Record) (*Record, error) {
	const q = `
        INSERT INTO record
               (profile_id, kind, title, target, icon, code, position, is_active)
        SELECT ?, ?, ?, ?, ?, ?, COUNT(*), TRUE
          FROM record
         WHERE profile_id = ? AND kind = ?`
	res, err := db.ExecContext(ctx, q,
		rec.ProfileID, rec.Kind, rec.Title, rec.Target, rec.Icon, rec.Code,
		rec.ProfileID, rec.Kind)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return ByID(ctx, db, rec.ProfileID, uint64(id))
}

// Update applies a partial patch.  Position and clicks are deliberately not
// patchable here; Reorder and IncrementClicks own those columns.
func Update(ctx context.Context, db *sqlx.DB, profileID, id uint64, p Patch) (*Record, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 6)
	if p.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Target != nil {
		set = append(set, "target = ?")
		args = append(args, *p.Target)
	}
	if p.Icon != nil {
		set = append(set, "icon = ?")
		args = append(args, *p.Icon)
	}
	if p.IsActive != nil {
		set = append(set, "is_active = ?")
		args = append(args, *p.IsActive)
	}
	if len(set) == 0 {
		return ByID(ctx, db, profileID, id)
	}

	q := "UPDATE record SET " + strings.Join(set, ", ") + " WHERE id = ? AND profile_id = ?"
	args = append(args, id, profileID)

	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	// Read back so callers see updated_at; a stale id surfaces ErrNotFound
	// here (UPDATE against a missing row matches zero rows silently).
	return ByID(ctx, db, profileID, id)
}

// Delete removes a record and renumbers every following row down by one, in
// one transaction, so positions stay a contiguous permutation.
func Delete(ctx context.Context, db *sqlx.DB, profileID, id uint64) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var old Record
	err = tx.GetContext(ctx, &old,
		`SELECT `+columns+` FROM record WHERE id = ? AND profile_id = ? FOR UPDATE`,
		id, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM record WHERE id = ? AND profile_id = ?`, id, profileID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE record SET position = position - 1
          WHERE profile_id = ? AND kind = ? AND position > ?`,
		profileID, old.Kind, old.Position)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Reorder replaces the whole ordering of a collection.  ids must be a
// permutation of the current id set; anything else fails with
// ErrBadPermutation and no row is touched.  All-or-nothing by transaction.
func Reorder(ctx context.Context, db *sqlx.DB, profileID uint64, kind string, ids []uint64) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current []uint64
	err = tx.SelectContext(ctx, &current,
		`SELECT id FROM record WHERE profile_id = ? AND kind = ? FOR UPDATE`,
		profileID, kind)
	if err != nil {
		return err
	}
	if !samePermutation(current, ids) {
		return ErrBadPermutation
	}

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE record SET position = ? WHERE id = ? AND profile_id = ?`,
			pos, id, profileID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// IncrementClicks bumps the monotonic click counter.  The redirect path is
// the only caller; failures there are logged and swallowed upstream.
func IncrementClicks(ctx context.Context, db *sqlx.DB, id uint64) error {
	res, err := db.ExecContext(ctx,
		`UPDATE record SET clicks = clicks + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

//
// helpers
//

// samePermutation reports whether got contains exactly the ids in want, each
// once, in any order.
func samePermutation(want, got []uint64) bool {
	if len(want) != len(got) {
		return false
	}
	seen := make(map[uint64]bool, len(want))
	for _, id := range want {
		seen[id] = true
	}
	for _, id := range got {
		if !seen[id] {
			return false // duplicate, or foreign id
		}
		delete(seen, id)
	}
	return len(seen) == 0
}
