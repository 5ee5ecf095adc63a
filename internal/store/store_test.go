package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := Config{Path: filepath.Join(t.TempDir(), "devfolio.db")}
	cfg.applyDefaults()
	s, err := OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndFetchUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "Dev@Example.COM", "hash", "Dev")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Email != "dev@example.com" {
		t.Errorf("email not normalised: %q", user.Email)
	}
	if user.Picture == "" {
		t.Error("default avatar missing")
	}

	byEmail, err := s.UserByEmail(ctx, "dev@example.com")
	if err != nil {
		t.Fatalf("user by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("lookup mismatch: %s vs %s", byEmail.ID, user.ID)
	}

	if _, err := s.UserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfileAndSettings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user, err := s.CreateUser(ctx, "dev@example.com", "hash", "Dev")
	if err != nil {
		t.Fatal(err)
	}

	bio := "Builds things"
	skills := StringList{"Go", "SQL"}
	updated, err := s.UpdateProfile(ctx, user.ID, ProfileUpdate{Bio: &bio, Skills: &skills})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Bio != bio || len(updated.Skills) != 2 {
		t.Errorf("profile not applied: %+v", updated)
	}
	if updated.Name != "Dev" {
		t.Errorf("untouched field changed: %q", updated.Name)
	}

	off := false
	settings, err := s.UpdateSettings(ctx, user.ID, SettingsUpdate{DarkMode: &off})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if settings.DarkMode {
		t.Error("dark mode should be off")
	}
	if !settings.EmailNotifications {
		t.Error("untouched setting changed")
	}
}

func TestProjectLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	owner, err := s.CreateUser(ctx, "owner@example.com", "hash", "Owner")
	if err != nil {
		t.Fatal(err)
	}

	project, err := s.CreateProject(ctx, Project{
		UserID:       owner.ID,
		Title:        "Portfolio Site",
		Description:  "A personal site",
		Technologies: StringList{"Go", "SQLite"},
		IsPublic:     true,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Status != "Planned" {
		t.Errorf("default status = %q", project.Status)
	}

	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []RoadmapItemRow{
		{Name: "Planning & Setup Phase", Category: "milestone", DueDate: due},
		{Name: "Set up repository", Description: "Init and CI", Category: "task", DueDate: due.AddDate(0, 0, 7)},
	}
	if err := s.ReplaceRoadmap(ctx, project.ID, "Two steps", items); err != nil {
		t.Fatalf("replace roadmap: %v", err)
	}
	stored, err := s.RoadmapItems(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 || stored[0].Name != "Planning & Setup Phase" || stored[1].Position != 1 {
		t.Fatalf("roadmap not persisted in order: %+v", stored)
	}

	if err := s.SetRoadmapItemCompleted(ctx, project.ID, stored[1].ID, true); err != nil {
		t.Fatalf("complete item: %v", err)
	}
	stored, _ = s.RoadmapItems(ctx, project.ID)
	if !stored[1].Completed {
		t.Error("completion flag not stored")
	}

	public, err := s.PublicProjects(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 1 {
		t.Fatalf("expected one public project, got %d", len(public))
	}

	if err := s.DeleteProject(ctx, project.ID, owner.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := s.ProjectByID(ctx, project.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("project should be gone, got %v", err)
	}
	leftover, _ := s.RoadmapItems(ctx, project.ID)
	if len(leftover) != 0 {
		t.Errorf("roadmap items should cascade, got %d", len(leftover))
	}
}

func TestStarAndFork(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	owner, _ := s.CreateUser(ctx, "owner@example.com", "hash", "Owner")
	fan, _ := s.CreateUser(ctx, "fan@example.com", "hash", "Fan")

	project, err := s.CreateProject(ctx, Project{
		UserID: owner.ID, Title: "Shared", Description: "d", IsPublic: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := s.ReplaceRoadmap(ctx, project.ID, "o", []RoadmapItemRow{
		{Name: "Step", Category: "task", DueDate: due, Completed: true},
	}); err != nil {
		t.Fatal(err)
	}

	starred, stars, err := s.ToggleProjectStar(ctx, project.ID, fan.ID)
	if err != nil {
		t.Fatalf("star: %v", err)
	}
	if !starred || stars != 1 {
		t.Errorf("star toggle = %v/%d", starred, stars)
	}
	starred, stars, err = s.ToggleProjectStar(ctx, project.ID, fan.ID)
	if err != nil {
		t.Fatal(err)
	}
	if starred || stars != 0 {
		t.Errorf("unstar toggle = %v/%d", starred, stars)
	}

	fork, err := s.ForkProject(ctx, project.ID, fan.ID)
	if err != nil {
		t.Fatalf("fork: %v", err)
	}
	if fork.UserID != fan.ID || !fork.ForkedFrom.Valid || fork.ForkedFrom.String != project.ID {
		t.Errorf("fork origin not recorded: %+v", fork)
	}
	if fork.IsPublic {
		t.Error("fork should start private")
	}
	forkItems, _ := s.RoadmapItems(ctx, fork.ID)
	if len(forkItems) != 1 || forkItems[0].Completed {
		t.Errorf("fork roadmap should copy items with completion reset: %+v", forkItems)
	}
	source, _ := s.ProjectByID(ctx, project.ID)
	if source.Forks != 1 {
		t.Errorf("source fork count = %d", source.Forks)
	}

	hidden, err := s.CreateProject(ctx, Project{UserID: owner.ID, Title: "Private", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ForkProject(ctx, hidden.ID, fan.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("private projects must not be forkable by others, got %v", err)
	}
}

func TestResumeUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user, _ := s.CreateUser(ctx, "dev@example.com", "hash", "Dev")

	first, err := s.SaveResume(ctx, user.ID, `{"summary":"v1"}`)
	if err != nil {
		t.Fatalf("save resume: %v", err)
	}
	second, err := s.SaveResume(ctx, user.ID, `{"summary":"v2"}`)
	if err != nil {
		t.Fatalf("resave resume: %v", err)
	}
	if second.ID != first.ID {
		t.Error("upsert should keep the original row")
	}
	if second.Payload != `{"summary":"v2"}` {
		t.Errorf("payload not replaced: %q", second.Payload)
	}

	if err := s.DeleteResume(ctx, user.ID); err != nil {
		t.Fatalf("delete resume: %v", err)
	}
	if _, err := s.ResumeForUser(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("resume should be gone, got %v", err)
	}
}

func TestExploreFeed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	author, _ := s.CreateUser(ctx, "author@example.com", "hash", "Author")
	reader, _ := s.CreateUser(ctx, "reader@example.com", "hash", "Reader")

	post, err := s.CreateExplorePost(ctx, ExplorePost{
		AuthorID:    author.ID,
		Title:       "My build log",
		Description: "Notes from a side project",
		Tags:        StringList{"go", "sqlite"},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	feed, err := s.ExplorePosts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 1 || feed[0].ID != post.ID {
		t.Fatalf("unexpected feed: %+v", feed)
	}

	starred, stars, err := s.ToggleExploreStar(ctx, post.ID, reader.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !starred || stars != 1 {
		t.Errorf("star toggle = %v/%d", starred, stars)
	}

	post.Title = "My build log, updated"
	updated, err := s.UpdateExplorePost(ctx, *post)
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.Title != "My build log, updated" {
		t.Errorf("title not updated: %q", updated.Title)
	}

	if err := s.DeleteExplorePost(ctx, post.ID, reader.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-author delete should fail, got %v", err)
	}
	if err := s.DeleteExplorePost(ctx, post.ID, author.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
}
