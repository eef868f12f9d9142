package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Sort modes for the project list.
const (
	SortName   = "name"
	SortChats  = "chats"
	SortRecent = "recent"
)

// SortModes is the cycle order for the tab binding.
var SortModes = []string{SortName, SortChats, SortRecent}

// SortLabels maps sort modes to their header labels.
var SortLabels = map[string]string{
	SortName:   "A-Z",
	SortChats:  "Most chats",
	SortRecent: "Recent",
}

// State holds the small mutable preferences persisted between runs.
// It is loaded once at startup and flushed wholesale after each change.
type State struct {
	Sort            string `json:"sort,omitempty"`
	SkipPermissions bool   `json:"skip_permissions,omitempty"`
	AISummaries     bool   `json:"ai_summaries,omitempty"`

	path string
}

// LoadState reads the preference file, returning defaults on any error.
func LoadState(path string) *State {
	st := &State{Sort: SortName, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return st
	}
	if err := json.Unmarshal(data, st); err != nil {
		return &State{Sort: SortName, path: path}
	}
	if !validSort(st.Sort) {
		st.Sort = SortName
	}
	return st
}

// Save writes the full preference file, replacing whatever was there.
func (s *State) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// CycleSort advances to the next sort mode and returns it.
func (s *State) CycleSort() string {
	for i, mode := range SortModes {
		if mode == s.Sort {
			s.Sort = SortModes[(i+1)%len(SortModes)]
			return s.Sort
		}
	}
	s.Sort = SortModes[0]
	return s.Sort
}

func validSort(mode string) bool {
	for _, m := range SortModes {
		if m == mode {
			return true
		}
	}
	return false
}
