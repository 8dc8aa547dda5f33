package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/StickCut/internal/model"
)

func TestBackupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup", "stickcut-backup.json")

	cfg := model.DefaultAppConfig()
	cfg.AddRecentProject("/tmp/garden-bench.json")
	inv := model.DefaultInventory()
	templates := model.DefaultTemplates()

	if err := ExportAllData(path, cfg, inv, templates); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected a creation timestamp")
	}
	if len(backup.Config.RecentProjects) != 1 {
		t.Error("config should round-trip")
	}
	if len(backup.Inventory.Stocks) != len(inv.Stocks) {
		t.Error("inventory should round-trip")
	}
	if len(backup.Templates.Templates) != len(templates.Templates) {
		t.Error("templates should round-trip")
	}
}

func TestImportRejectsMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad-backup.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ImportAllData(path)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected missing version error, got %v", err)
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected an error for a missing backup file")
	}
}
