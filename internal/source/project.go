package source

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/neochoon/agenthud-sub001/internal/refresh"
)

// ProjectData summarizes the working tree.
type ProjectData struct {
	Root       string
	Name       string
	Language   string
	Files      int
	Dirs       int
	NewestFile string
	NewestTime time.Time
}

// skipDirs are never descended into during the tree walk.
var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true,
	".venv": true, "dist": true, "target": true, "__pycache__": true,
}

// languageByExt maps source-file extensions to a display language.
var languageByExt = map[string]string{
	".go": "Go", ".ts": "TypeScript", ".tsx": "TypeScript",
	".js": "JavaScript", ".jsx": "JavaScript", ".py": "Python",
	".rs": "Rust", ".rb": "Ruby", ".java": "Java", ".kt": "Kotlin",
	".c": "C", ".h": "C", ".cpp": "C++", ".cc": "C++",
	".cs": "C#", ".swift": "Swift", ".php": "PHP", ".ex": "Elixir",
	".zig": "Zig", ".sh": "Shell",
}

// ProjectFetcher summarizes the tree rooted at dir: name, dominant language,
// file and directory counts, newest modification. Hidden and dependency
// directories are skipped.
func ProjectFetcher(dir string) refresh.Fetcher {
	return func(ctx context.Context) (any, error) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		data := ProjectData{Root: abs, Name: filepath.Base(abs)}
		byLang := map[string]int{}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil // unreadable entries don't fail the summary
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			name := d.Name()
			if d.IsDir() {
				if path != abs && (skipDirs[name] || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				if path != abs {
					data.Dirs++
				}
				return nil
			}
			data.Files++
			if lang, ok := languageByExt[filepath.Ext(name)]; ok {
				byLang[lang]++
			}
			if info, err := d.Info(); err == nil && info.ModTime().After(data.NewestTime) {
				data.NewestTime = info.ModTime()
				if rel, relErr := filepath.Rel(abs, path); relErr == nil {
					data.NewestFile = rel
				} else {
					data.NewestFile = name
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		data.Language = dominantLanguage(byLang)
		return data, nil
	}
}

// dominantLanguage picks the language with the most files; ties break
// alphabetically so output is stable.
func dominantLanguage(counts map[string]int) string {
	langs := make([]string, 0, len(counts))
	for l := range counts {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	best := ""
	bestCount := 0
	for _, l := range langs {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	return best
}
