package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/korbo/claude-chats/internal/config"
	"github.com/korbo/claude-chats/internal/log"
)

// Project is one entry of the projects directory: an encoded folder holding
// the JSONL transcripts recorded for a working directory.
type Project struct {
	Name         string // display name, ~-relative when under home
	Dir          string // the encoded projects-dir entry itself
	RealPath     string // decoded working directory (may not exist)
	ChatCount    int
	LastActivity time.Time
	Missing      bool // decoded path does not exist on disk
}

// List scans the projects directory and returns one Project per entry.
// Unreadable entries are skipped, a missing projects directory is an error.
func List(projectsDir string) ([]Project, error) {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil, err
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(projectsDir, entry.Name())
		real, missing := DecodeDir(entry.Name())

		count, newest, err := countChats(dir)
		if err != nil {
			log.Warn().Err(err).Str("project", entry.Name()).Msg("skipping unreadable project")
			continue
		}

		projects = append(projects, Project{
			Name:         DisplayName(real),
			Dir:          dir,
			RealPath:     real,
			ChatCount:    count,
			LastActivity: newest,
			Missing:      missing,
		})
	}
	return projects, nil
}

func countChats(dir string) (int, time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, time.Time{}, err
	}

	count := 0
	var newest time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		count++
		if info, err := e.Info(); err == nil && info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return count, newest, nil
}

// Sort orders projects according to a sort mode from the preference state.
func Sort(projects []Project, mode string) {
	switch mode {
	case config.SortChats:
		sort.SliceStable(projects, func(i, j int) bool {
			if projects[i].ChatCount != projects[j].ChatCount {
				return projects[i].ChatCount > projects[j].ChatCount
			}
			return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
		})
	case config.SortRecent:
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].LastActivity.After(projects[j].LastActivity)
		})
	default:
		sort.SliceStable(projects, func(i, j int) bool {
			return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
		})
	}
}
