package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Window defines a tmux window configuration
type Window struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command,omitempty"`
}

// Tmux contains tmux-related configuration
type Tmux struct {
	Windows []Window `yaml:"windows"`
}

// Summary configures the external summarization service
type Summary struct {
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Workers int    `yaml:"workers,omitempty"`
}

// Config holds all static configuration options
type Config struct {
	ProjectsDir string  `yaml:"projects_dir,omitempty"`
	Summary     Summary `yaml:"summary"`
	Tmux        Tmux    `yaml:"tmux"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		ProjectsDir: filepath.Join(home, ".claude", "projects"),
		Summary: Summary{
			Model:   "gemini-2.5-flash-lite",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai",
			Workers: 4,
		},
		Tmux: Tmux{
			Windows: []Window{
				{Name: "logs"},
				{Name: "edit"},
				{Name: "scratch"},
			},
		},
	}
}

// configPath returns the path to the config file
func configPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "claude-chats", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "claude-chats", "config.yaml")
}

// Load loads config from file, falling back to defaults
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	if cfg.ProjectsDir == "" {
		cfg.ProjectsDir = DefaultConfig().ProjectsDir
	}
	if cfg.Summary.Workers <= 0 {
		cfg.Summary.Workers = 4
	}
	return cfg
}

// Path returns the config file path (for help text)
func Path() string {
	return configPath()
}

// StateDir is where mutable state lives, shared with the claude CLI itself.
func StateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

// StatePath returns the path of the persisted preference file.
func StatePath() string {
	return filepath.Join(StateDir(), "claude-chats.json")
}

// SummaryCachePath returns the path of the persisted summary cache.
func SummaryCachePath() string {
	return filepath.Join(StateDir(), "claude-chats-summaries.json")
}

// KeyFilePath returns the path of the summarization API key file.
func KeyFilePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gemini_api_key")
}
