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

func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// CreateProject inserts a new project owned by the given user and returns
// the stored row.
func (s *Store) CreateProject(ctx context.Context, project Project) (*Project, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(project.Title) == "" {
		return nil, fmt.Errorf("project title required")
	}
	if project.Status == "" {
		project.Status = "Planned"
	}
	project.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `INSERT INTO projects
                (id, user_id, title, description, technologies, status, is_public,
                 forked_from, roadmap_overview, github_url, demo_url, image_url,
                 created_at, updated_at)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.UserID, project.Title, project.Description,
		project.Technologies, project.Status, project.IsPublic,
		project.ForkedFrom, project.RoadmapOverview,
		project.GitHubURL, project.DemoURL, project.ImageURL, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return s.ProjectByID(ctx, project.ID)
}

// ProjectsForUser returns every project owned by the user, newest first.
func (s *Store) ProjectsForUser(ctx context.Context, userID string) ([]Project, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	projects := []Project{}
	if err := s.db.SelectContext(ctx, &projects,
		`SELECT * FROM projects WHERE user_id = ? ORDER BY created_at DESC, id`, userID); err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	return projects, nil
}

// ProjectByID retrieves a single project.
func (s *Store) ProjectByID(ctx context.Context, id string) (*Project, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var project Project
	err := s.db.GetContext(ctx, &project, `SELECT * FROM projects WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select project: %w", err)
	}
	return &project, nil
}

// UpdateProject replaces the editable fields of a project the user owns.
func (s *Store) UpdateProject(ctx context.Context, project Project) (*Project, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE projects SET
                title = ?, description = ?, technologies = ?, status = ?,
                is_public = ?, roadmap_overview = ?, github_url = ?, demo_url = ?,
                image_url = ?, updated_at = ?
                WHERE id = ? AND user_id = ?`,
		project.Title, project.Description, project.Technologies, project.Status,
		project.IsPublic, project.RoadmapOverview, project.GitHubURL, project.DemoURL,
		project.ImageURL, time.Now().UTC(), project.ID, project.UserID)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return s.ProjectByID(ctx, project.ID)
}

// DeleteProject removes a project the user owns. Roadmap items and stars
// cascade.
func (s *Store) DeleteProject(ctx context.Context, id, userID string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PublicProjects lists community-visible projects, newest first.
func (s *Store) PublicProjects(ctx context.Context, limit int) ([]Project, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	projects := []Project{}
	if err := s.db.SelectContext(ctx, &projects,
		`SELECT * FROM projects WHERE is_public = 1 ORDER BY created_at DESC, id LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("select public projects: %w", err)
	}
	return projects, nil
}

// ToggleProjectStar stars the project for the user, or removes the star if
// one exists. It returns the new starred state and total count.
func (s *Store) ToggleProjectStar(ctx context.Context, projectID, userID string) (bool, int, error) {
	if err := s.ensureReady(); err != nil {
		return false, 0, err
	}
	var starred bool
	var stars int
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists,
			`SELECT COUNT(*) FROM project_stars WHERE project_id = ? AND user_id = ?`, projectID, userID); err != nil {
			return fmt.Errorf("check star: %w", err)
		}
		if exists > 0 {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM project_stars WHERE project_id = ? AND user_id = ?`, projectID, userID); err != nil {
				return fmt.Errorf("remove star: %w", err)
			}
			starred = false
		} else {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO project_stars (project_id, user_id) VALUES (?, ?)`, projectID, userID); err != nil {
				return fmt.Errorf("add star: %w", err)
			}
			starred = true
		}
		if _, err := tx.ExecContext(ctx, `UPDATE projects SET stars =
                        (SELECT COUNT(*) FROM project_stars WHERE project_id = ?)
                        WHERE id = ?`, projectID, projectID); err != nil {
			return fmt.Errorf("update star count: %w", err)
		}
		if err := tx.GetContext(ctx, &stars, `SELECT stars FROM projects WHERE id = ?`, projectID); err != nil {
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

// ForkProject copies a public project into the user's account, records the
// origin, and bumps the source fork counter. The copied roadmap travels with
// the fork.
func (s *Store) ForkProject(ctx context.Context, projectID, userID string) (*Project, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	source, err := s.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !source.IsPublic && source.UserID != userID {
		return nil, ErrNotFound
	}
	items, err := s.RoadmapItems(ctx, projectID)
	if err != nil {
		return nil, err
	}

	forkID := uuid.NewString()
	now := time.Now().UTC()
	err = withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO projects
                        (id, user_id, title, description, technologies, status, is_public,
                         forked_from, roadmap_overview, github_url, demo_url, image_url,
                         created_at, updated_at)
                        VALUES (?, ?, ?, ?, ?, 'Planned', 0, ?, ?, ?, ?, ?, ?, ?)`,
			forkID, userID, source.Title, source.Description, source.Technologies,
			source.ID, source.RoadmapOverview, source.GitHubURL, source.DemoURL,
			source.ImageURL, now, now); err != nil {
			return fmt.Errorf("insert fork: %w", err)
		}
		for _, item := range items {
			if _, err := tx.ExecContext(ctx, `INSERT INTO project_roadmap_items
                                (project_id, position, name, description, category, due_date, completed)
                                VALUES (?, ?, ?, ?, ?, ?, 0)`,
				forkID, item.Position, item.Name, item.Description, item.Category, item.DueDate); err != nil {
				return fmt.Errorf("copy roadmap item: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE projects SET forks = forks + 1 WHERE id = ?`, source.ID); err != nil {
			return fmt.Errorf("bump fork count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ProjectByID(ctx, forkID)
}

// ReplaceRoadmap overwrites a project's roadmap overview and items in one
// transaction.
func (s *Store) ReplaceRoadmap(ctx context.Context, projectID, overview string, items []RoadmapItemRow) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE projects SET roadmap_overview = ?, updated_at = ? WHERE id = ?`,
			overview, time.Now().UTC(), projectID)
		if err != nil {
			return fmt.Errorf("update roadmap overview: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM project_roadmap_items WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("clear roadmap items: %w", err)
		}
		for i, item := range items {
			if _, err := tx.ExecContext(ctx, `INSERT INTO project_roadmap_items
                                (project_id, position, name, description, category, due_date, completed)
                                VALUES (?, ?, ?, ?, ?, ?, ?)`,
				projectID, i, item.Name, item.Description, item.Category, item.DueDate, item.Completed); err != nil {
				return fmt.Errorf("insert roadmap item: %w", err)
			}
		}
		return nil
	})
}

// RoadmapItems returns a project's roadmap entries in stored order.
func (s *Store) RoadmapItems(ctx context.Context, projectID string) ([]RoadmapItemRow, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	items := []RoadmapItemRow{}
	if err := s.db.SelectContext(ctx, &items,
		`SELECT * FROM project_roadmap_items WHERE project_id = ? ORDER BY position, id`, projectID); err != nil {
		return nil, fmt.Errorf("select roadmap items: %w", err)
	}
	return items, nil
}

// SetRoadmapItemCompleted flips the completion flag on one roadmap entry.
func (s *Store) SetRoadmapItemCompleted(ctx context.Context, projectID string, itemID int64, completed bool) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE project_roadmap_items SET completed = ? WHERE id = ? AND project_id = ?`,
		completed, itemID, projectID)
	if err != nil {
		return fmt.Errorf("update roadmap item: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
