package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
	"github.com/mirabelle514/LovingPaws/internal/domain/users"
)

type UsersRepo struct {
	store *Store
}

func NewUsersRepo(store *Store) *UsersRepo {
	return &UsersRepo{store: store}
}

const userSelect = `
	SELECT id, user_name, user_email, COALESCE(profile_image, ''),
	       avatar_initials, member_since, created_at, updated_at, synced_to_cloud
	FROM users`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, user_name, user_email, profile_image,
			avatar_initials, member_since, created_at, updated_at, synced_to_cloud)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		u.ID, u.UserName, u.UserEmail, toNull(u.ProfileImage),
		u.AvatarInitials, u.MemberSince, r.store.fmtTime(u.CreatedAt), r.store.fmtTime(u.UpdatedAt))
	if err != nil {
		return err
	}

	if err := r.store.enqueueTx(ctx, tx, "users", u.ID, syncqueue.OpInsert, u); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *UsersRepo) Update(ctx context.Context, id string, patch users.Patch) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	var (
		sets []string
		args []any
		snap = map[string]any{"id": id}
	)
	set := func(col, key string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
		snap[key] = v
	}

	if patch.UserName != nil {
		set("user_name", "userName", *patch.UserName)
		set("avatar_initials", "avatarInitials", users.AvatarInitials(*patch.UserName))
	}
	if patch.UserEmail != nil {
		set("user_email", "userEmail", *patch.UserEmail)
	}
	if patch.ProfileImage != nil {
		set("profile_image", "profileImage", *patch.ProfileImage)
	}
	if len(sets) == 0 {
		return users.ErrInvalidInput
	}

	now := r.store.now()
	sets = append(sets, "updated_at = ?", "synced_to_cloud = 0")
	args = append(args, r.store.fmtTime(now), id)
	snap["updatedAt"] = now.UTC()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return users.ErrNotFound
	}

	if err := r.store.enqueueTx(ctx, tx, "users", id, syncqueue.OpUpdate, snap); err != nil {
		return err
	}
	return tx.Commit()
}

// Get devuelve el perfil único de la instalación.
func (r *UsersRepo) Get(ctx context.Context) (users.User, error) {
	db, err := r.store.handle()
	if err != nil {
		return users.User{}, err
	}
	row := db.QueryRowContext(ctx, userSelect+` ORDER BY created_at ASC LIMIT 1`)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	return u, err
}

// UpsertIfNewer aplica el perfil bajado de la nube con last-write-wins.
func (r *UsersRepo) UpsertIfNewer(ctx context.Context, u users.User) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, user_name, user_email, profile_image,
			avatar_initials, member_since, created_at, updated_at, synced_to_cloud)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			user_name = excluded.user_name, user_email = excluded.user_email,
			profile_image = excluded.profile_image,
			avatar_initials = excluded.avatar_initials,
			member_since = excluded.member_since,
			updated_at = excluded.updated_at, synced_to_cloud = 1
		WHERE excluded.updated_at > users.updated_at`,
		u.ID, u.UserName, u.UserEmail, toNull(u.ProfileImage),
		u.AvatarInitials, u.MemberSince, r.store.fmtTime(u.CreatedAt), r.store.fmtTime(u.UpdatedAt))
	return err
}

func scanUser(row rowScanner) (users.User, error) {
	var (
		u                    users.User
		createdAt, updatedAt string
	)
	err := row.Scan(&u.ID, &u.UserName, &u.UserEmail, &u.ProfileImage,
		&u.AvatarInitials, &u.MemberSince, &createdAt, &updatedAt, &u.SyncedToCloud)
	if err != nil {
		return users.User{}, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return users.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return users.User{}, err
	}
	return u, nil
}
