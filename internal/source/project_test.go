package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestProjectFetcher(t *testing.T) {
	dir := t.TempDir()
	mk := func(rel, content string) string {
		t.Helper()
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	mk("a.go", "package a")
	mk("b.go", "package a")
	mk("web.ts", "export {}")
	mk(filepath.Join("sub", "c.go"), "package sub")
	mk(filepath.Join(".git", "config"), "")
	mk(filepath.Join("node_modules", "x.js"), "")

	// Force a deterministic newest file.
	newest := mk("fresh.go", "package a")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(newest, future, future); err != nil {
		t.Fatal(err)
	}

	got, err := ProjectFetcher(dir)(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	data := got.(ProjectData)

	if data.Name != filepath.Base(dir) {
		t.Errorf("name = %q, want %q", data.Name, filepath.Base(dir))
	}
	if data.Files != 5 {
		t.Errorf("files = %d, want 5 (skipped dirs excluded)", data.Files)
	}
	if data.Dirs != 1 {
		t.Errorf("dirs = %d, want 1", data.Dirs)
	}
	if data.Language != "Go" {
		t.Errorf("language = %q, want Go", data.Language)
	}
	if data.NewestFile != "fresh.go" {
		t.Errorf("newest = %q, want fresh.go", data.NewestFile)
	}
}

func TestProjectFetcherMissingDir(t *testing.T) {
	if _, err := ProjectFetcher(filepath.Join(t.TempDir(), "gone"))(context.Background()); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDominantLanguage(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   string
	}{
		{"empty", map[string]int{}, ""},
		{"single", map[string]int{"Go": 3}, "Go"},
		{"majority", map[string]int{"Go": 5, "TypeScript": 2}, "Go"},
		{"tie breaks alphabetically", map[string]int{"Rust": 2, "Go": 2}, "Go"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := dominantLanguage(tc.counts); got != tc.want {
				t.Errorf("dominantLanguage = %q, want %q", got, tc.want)
			}
		})
	}
}
