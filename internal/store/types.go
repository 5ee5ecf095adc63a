package store

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a []string as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = out
	return nil
}

// User is a registered account row.
type User struct {
	ID                 string     `db:"id"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	Name               string     `db:"name"`
	Picture            string     `db:"picture"`
	Bio                string     `db:"bio"`
	Location           string     `db:"location"`
	Website            string     `db:"website"`
	Company            string     `db:"company"`
	Skills             StringList `db:"skills"`
	DarkMode           bool       `db:"dark_mode"`
	EmailNotifications bool       `db:"email_notifications"`
	PublicProfile      bool       `db:"public_profile"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// Project is a tracked portfolio project row.
type Project struct {
	ID              string         `db:"id"`
	UserID          string         `db:"user_id"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	Technologies    StringList     `db:"technologies"`
	Status          string         `db:"status"`
	IsPublic        bool           `db:"is_public"`
	Stars           int            `db:"stars"`
	Forks           int            `db:"forks"`
	ForkedFrom      sql.NullString `db:"forked_from"`
	RoadmapOverview string         `db:"roadmap_overview"`
	GitHubURL       string         `db:"github_url"`
	DemoURL         string         `db:"demo_url"`
	ImageURL        string         `db:"image_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// RoadmapItemRow is one persisted roadmap entry belonging to a project.
type RoadmapItemRow struct {
	ID          int64     `db:"id"`
	ProjectID   string    `db:"project_id"`
	Position    int       `db:"position"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	DueDate     time.Time `db:"due_date"`
	Completed   bool      `db:"completed"`
}

// ResumeRow stores a user's structured resume document as a JSON payload.
type ResumeRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Payload   string    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ExplorePost is a public feed entry.
type ExplorePost struct {
	ID          string         `db:"id"`
	AuthorID    string         `db:"author_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Tags        StringList     `db:"tags"`
	Stars       int            `db:"stars"`
	Forks       int            `db:"forks"`
	ForkedFrom  sql.NullString `db:"forked_from"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
