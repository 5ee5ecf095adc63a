package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports that the requested row does not exist.
var ErrNotFound = errors.New("not found")

const defaultAvatar = "https://www.gravatar.com/avatar/?d=mp"

// CreateUser inserts a new account and returns the stored row. Emails are
// normalised to lower case before the uniqueness check applies.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, name string) (*User, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email required")
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `INSERT INTO users
                (id, email, password_hash, name, picture, created_at, updated_at)
                VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, email, passwordHash, name, defaultAvatar, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.UserByID(ctx, id)
}

// UserByEmail looks up an account by normalised email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var user User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// UserByID looks up an account by identifier.
func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var user User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// ProfileUpdate carries the profile fields a user may change. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	Name     *string
	Picture  *string
	Bio      *string
	Location *string
	Website  *string
	Company  *string
	Skills   *StringList
}

// UpdateProfile applies the provided profile changes and returns the fresh row.
func (s *Store) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Picture != nil {
		sets = append(sets, "picture = ?")
		args = append(args, *update.Picture)
	}
	if update.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *update.Bio)
	}
	if update.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *update.Location)
	}
	if update.Website != nil {
		sets = append(sets, "website = ?")
		args = append(args, *update.Website)
	}
	if update.Company != nil {
		sets = append(sets, "company = ?")
		args = append(args, *update.Company)
	}
	if update.Skills != nil {
		sets = append(sets, "skills = ?")
		args = append(args, *update.Skills)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return s.UserByID(ctx, id)
}

// SettingsUpdate carries the user setting toggles. Nil pointers leave the
// stored value untouched.
type SettingsUpdate struct {
	DarkMode           *bool
	EmailNotifications *bool
	PublicProfile      *bool
}

// UpdateSettings applies the provided setting changes and returns the fresh row.
func (s *Store) UpdateSettings(ctx context.Context, id string, update SettingsUpdate) (*User, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}
	if update.DarkMode != nil {
		sets = append(sets, "dark_mode = ?")
		args = append(args, *update.DarkMode)
	}
	if update.EmailNotifications != nil {
		sets = append(sets, "email_notifications = ?")
		args = append(args, *update.EmailNotifications)
	}
	if update.PublicProfile != nil {
		sets = append(sets, "public_profile = ?")
		args = append(args, *update.PublicProfile)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return s.UserByID(ctx, id)
}
