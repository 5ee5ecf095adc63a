package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveResume stores or replaces the user's resume document. The payload is
// opaque JSON owned by the caller.
func (s *Store) SaveResume(ctx context.Context, userID, payload string) (*ResumeRow, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `INSERT INTO resumes (id, user_id, payload, created_at, updated_at)
                VALUES (?, ?, ?, ?, ?)
                ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		uuid.NewString(), userID, payload, now, now)
	if err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}
	return s.ResumeForUser(ctx, userID)
}

// ResumeForUser returns the user's stored resume, if any.
func (s *Store) ResumeForUser(ctx context.Context, userID string) (*ResumeRow, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var row ResumeRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM resumes WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select resume: %w", err)
	}
	return &row, nil
}

// DeleteResume removes the user's stored resume.
func (s *Store) DeleteResume(ctx context.Context, userID string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
