// Package launcher hands control off to the external claude CLI.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/korbo/claude-chats/internal/config"
	"github.com/korbo/claude-chats/internal/log"
	"github.com/korbo/claude-chats/internal/project"
	"github.com/korbo/claude-chats/internal/session"
	"github.com/korbo/claude-chats/internal/tmux"
)

// Launcher builds and runs claude commands for resume and new sessions.
type Launcher struct {
	cfg   *config.Config
	state *config.State
}

// New returns a Launcher bound to the loaded config and preference state.
func New(cfg *config.Config, state *config.State) *Launcher {
	return &Launcher{cfg: cfg, state: state}
}

// CheckClaude verifies the claude CLI is installed.
func CheckClaude() error {
	if _, err := exec.LookPath("claude"); err != nil {
		return fmt.Errorf("claude not found on PATH; install the claude CLI first")
	}
	return nil
}

// Resume relaunches claude on an existing conversation. The working
// directory recorded inside the transcript wins over the decoded project
// path, which is itself recreated if it no longer exists.
func (l *Launcher) Resume(encodedDir, sessionFile string) error {
	id := sessionID(sessionFile)
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("%q is not a session id: %w", id, err)
	}

	dir := resumeDir(encodedDir, sessionFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("recreating project directory: %w", err)
	}

	return l.run(dir, l.claudeArgs("--resume", id))
}

// NewSession starts a fresh claude session in dir, creating it if needed.
func (l *Launcher) NewSession(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	return l.run(dir, l.claudeArgs())
}

// NewFolder creates a project folder plus its encoded projects-dir entry so
// it shows up in the list even before the first chat, then launches claude.
func (l *Launcher) NewFolder(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}
	entry := project.EncodePath(dir)
	if err := os.MkdirAll(filepath.Join(l.cfg.ProjectsDir, entry), 0755); err != nil {
		return fmt.Errorf("creating project entry: %w", err)
	}
	return l.run(dir, l.claudeArgs())
}

func (l *Launcher) claudeArgs(args ...string) []string {
	if l.state.SkipPermissions && !isRoot() {
		args = append(args, "--dangerously-skip-permissions")
	}
	return args
}

func (l *Launcher) run(dir string, args []string) error {
	log.Info().Str("dir", dir).Strs("args", args).Msg("launching claude")

	if tmux.IsInsideTmux() {
		if err := l.runInTmux(dir, args); err == nil {
			return nil
		}
		// tmux trouble falls back to a direct launch
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("entering %s: %w", dir, err)
	}
	cmd := exec.Command("claude", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (l *Launcher) runInTmux(dir string, args []string) error {
	mgr, err := tmux.New()
	if err != nil {
		return err
	}

	name := tmux.SessionName(dir)
	if !mgr.SessionExists(name) {
		if err := mgr.CreateProjectSession(name, dir, l.cfg.Tmux.Windows); err != nil {
			return err
		}
	}
	if err := mgr.SwitchToSession(name); err != nil {
		return err
	}

	claudeCmd := "claude"
	if len(args) > 0 {
		claudeCmd += " " + strings.Join(args, " ")
	}
	wrapped := fmt.Sprintf("cd %q && %s; exec $SHELL", dir, claudeCmd)
	return mgr.RespawnWindow(name, "claude", wrapped)
}

// OpenFileManager opens dir in the platform file manager.
func OpenFileManager(dir string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", dir)
	case "windows":
		cmd = exec.Command("explorer", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}
	return cmd.Start()
}

// resumeDir resolves where a session should resume: the working directory
// recorded inside the transcript when it still exists, else the decoded
// project path.
func resumeDir(encodedDir, sessionFile string) string {
	if dir := session.ReadCwd(sessionFile); dir != "" && isDir(dir) {
		return dir
	}
	dir, _ := project.DecodeDir(encodedDir)
	return dir
}

func sessionID(sessionFile string) string {
	return strings.TrimSuffix(filepath.Base(sessionFile), ".jsonl")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRoot() bool {
	return os.Geteuid() == 0
}
