package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateExplorePost publishes a post to the public feed.
func (s *Store) CreateExplorePost(ctx context.Context, post ExplorePost) (*ExplorePost, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(post.Title) == "" {
		return nil, fmt.Errorf("post title required")
	}
	post.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `INSERT INTO explore_posts
                (id, author_id, title, description, tags, forked_from, created_at, updated_at)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.AuthorID, post.Title, post.Description, post.Tags,
		post.ForkedFrom, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert explore post: %w", err)
	}
	return s.ExplorePostByID(ctx, post.ID)
}

// ExplorePosts returns the public feed, newest first.
func (s *Store) ExplorePosts(ctx context.Context, limit int) ([]ExplorePost, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	posts := []ExplorePost{}
	if err := s.db.SelectContext(ctx, &posts,
		`SELECT * FROM explore_posts ORDER BY created_at DESC, id LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("select explore posts: %w", err)
	}
	return posts, nil
}

// ExplorePostByID retrieves a single feed entry.
func (s *Store) ExplorePostByID(ctx context.Context, id string) (*ExplorePost, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var post ExplorePost
	err := s.db.GetContext(ctx, &post, `SELECT * FROM explore_posts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select explore post: %w", err)
	}
	return &post, nil
}

// UpdateExplorePost replaces the editable fields of a post the user authored.
func (s *Store) UpdateExplorePost(ctx context.Context, post ExplorePost) (*ExplorePost, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE explore_posts
                SET title = ?, description = ?, tags = ?, updated_at = ?
                WHERE id = ? AND author_id = ?`,
		post.Title, post.Description, post.Tags, time.Now().UTC(), post.ID, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("update explore post: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return s.ExplorePostByID(ctx, post.ID)
}

// DeleteExplorePost removes a post the user authored.
func (s *Store) DeleteExplorePost(ctx context.Context, id, authorID string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM explore_posts WHERE id = ? AND author_id = ?`, id, authorID)
	if err != nil {
		return fmt.Errorf("delete explore post: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleExploreStar stars the post for the user, or removes the star if one
// exists. It returns the new starred state and total count.
func (s *Store) ToggleExploreStar(ctx context.Context, postID, userID string) (bool, int, error) {
	if err := s.ensureReady(); err != nil {
		return false, 0, err
	}
	var starred bool
	var stars int
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists,
			`SELECT COUNT(*) FROM explore_stars WHERE post_id = ? AND user_id = ?`, postID, userID); err != nil {
			return fmt.Errorf("check star: %w", err)
		}
		if exists > 0 {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM explore_stars WHERE post_id = ? AND user_id = ?`, postID, userID); err != nil {
				return fmt.Errorf("remove star: %w", err)
			}
			starred = false
		} else {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO explore_stars (post_id, user_id) VALUES (?, ?)`, postID, userID); err != nil {
				return fmt.Errorf("add star: %w", err)
			}
			starred = true
		}
		if _, err := tx.ExecContext(ctx, `UPDATE explore_posts SET stars =
                        (SELECT COUNT(*) FROM explore_stars WHERE post_id = ?)
                        WHERE id = ?`, postID, postID); err != nil {
			return fmt.Errorf("update star count: %w", err)
		}
		if err := tx.GetContext(ctx, &stars, `SELECT stars FROM explore_posts WHERE id = ?`, postID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("read star count: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return starred, stars, nil
}
