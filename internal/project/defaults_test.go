package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/StickCut/internal/model"
)

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stickcut.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRunDefaults(t *testing.T) {
	path := writeDefaults(t, `
kerf = 2.5
min_offcut = 150.0
optimization_priority = "cost"
allow_resaw = true
`)

	params, err := LoadRunDefaults(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if params.Kerf != 2.5 {
		t.Errorf("expected kerf 2.5, got %f", params.Kerf)
	}
	if params.MinOffcut != 150 {
		t.Errorf("expected min offcut 150, got %f", params.MinOffcut)
	}
	if params.Priority != model.PriorityCost {
		t.Errorf("expected cost priority, got %s", params.Priority)
	}
	if !params.AllowResaw {
		t.Error("expected resaw enabled")
	}
	// Keys not present keep their built-in defaults.
	if params.Tolerance != model.DefaultParameters().Tolerance {
		t.Error("unset keys should keep defaults")
	}
}

func TestLoadRunDefaultsMissingFile(t *testing.T) {
	params, err := LoadRunDefaults(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing defaults file should not be an error: %v", err)
	}
	if params.Kerf != model.DefaultParameters().Kerf {
		t.Error("expected built-in defaults")
	}
}

func TestLoadRunDefaultsRejectsUnknownKeys(t *testing.T) {
	path := writeDefaults(t, `curf = 3.0`)
	_, err := LoadRunDefaults(path)
	if err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}
