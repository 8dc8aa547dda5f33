package model

import "testing"

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()

	cfg.AddRecentProject("/tmp/a.json")
	cfg.AddRecentProject("/tmp/b.json")
	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "/tmp/b.json" {
		t.Error("newest project should be first")
	}

	// Re-adding an existing path moves it to the front without duplicating.
	cfg.AddRecentProject("/tmp/a.json")
	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 entries after re-add, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "/tmp/a.json" {
		t.Error("re-added project should move to the front")
	}
}

func TestAddRecentProjectTrims(t *testing.T) {
	cfg := AppConfig{MaxRecent: 3}
	for _, p := range []string{"a", "b", "c", "d"} {
		cfg.AddRecentProject(p)
	}
	if len(cfg.RecentProjects) != 3 {
		t.Fatalf("expected list trimmed to 3, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "d" {
		t.Error("newest entry should survive the trim")
	}
	for _, p := range cfg.RecentProjects {
		if p == "a" {
			t.Error("oldest entry should have been dropped")
		}
	}
}
